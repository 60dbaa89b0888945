package topics

const (
	// Apostas
	BetPlaced = "bet_placed"

	// Resultados / liquidação
	ResultEntered = "result_entered"
	RoundSettled  = "round_settled"

	// DLQs
	ResultEnteredDLQ = "result_entered_dlq"
)
