package redemption

// State represents a stage of the partner scanner redemption flow
type State string

const (
	// StateEntrada: the voucher code has not been looked up yet
	StateEntrada State = "entrada"
	// StateDados: the voucher was found and its details are shown for confirmation
	StateDados State = "dados"
	// StateValor: the operator enters the amount actually given
	StateValor State = "valor"
	// StateFinalizado: terminal, the redemption has been recorded
	StateFinalizado State = "finalizado"
)

var validStates = map[State]bool{
	StateEntrada:    true,
	StateDados:      true,
	StateValor:      true,
	StateFinalizado: true,
}

// IsTerminal returns true if no further triggers other than reset are
// meaningful in this state
func (s State) IsTerminal() bool {
	return s == StateFinalizado
}

// IsValid returns true if the state is a valid redemption state
func (s State) IsValid() bool {
	return validStates[s]
}

// String returns the string representation of the state
func (s State) String() string {
	return string(s)
}
