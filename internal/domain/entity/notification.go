package entity

// RequestType is the closed set of HR self-service request types
type RequestType string

const (
	RequestFerias           RequestType = "Férias"
	RequestAtestadoMedico   RequestType = "Atestado Médico"
	RequestDeclaracao       RequestType = "Declaração"
	RequestAlteracaoDados   RequestType = "Alteração de Dados"
	RequestSaidaAntecipada  RequestType = "Saída Antecipada"
	RequestTransferencia    RequestType = "Transferência"
	RequestMudancaHorario   RequestType = "Mudança de Horário"
	RequestValeTransporte   RequestType = "Vale-Transporte"
	RequestBeneficios       RequestType = "Benefícios"
)

// IsValid returns true if the request type is one of the defined constants
func (t RequestType) IsValid() bool {
	switch t {
	case RequestFerias, RequestAtestadoMedico, RequestDeclaracao,
		RequestAlteracaoDados, RequestSaidaAntecipada, RequestTransferencia,
		RequestMudancaHorario, RequestValeTransporte, RequestBeneficios:
		return true
	}
	return false
}

// RequestStatus is the review status of an HR request
type RequestStatus string

const (
	RequestPendente  RequestStatus = "Pendente"
	RequestAprovada  RequestStatus = "Aprovada"
	RequestRejeitada RequestStatus = "Rejeitada"
)

// NotificacaoSolicitacao is an HR request notification shown in the header
// bell. It has its own lifecycle and is not part of the voucher state
// machine; only the Lida flag is mutated after creation.
type NotificacaoSolicitacao struct {
	ID              string        `json:"id"`
	Matricula       string        `json:"matricula"`
	Colaborador     string        `json:"colaborador"`
	Solicitacao     RequestType   `json:"solicitacao"`
	Status          RequestStatus `json:"status"`
	DataSolicitacao string        `json:"datasolicitacao"`
	Lida            bool          `json:"lida"`

	// HR evaluation fields, empty until reviewed
	Setor                  string `json:"setor,omitempty"`
	Cargo                  string `json:"cargo,omitempty"`
	DescricaoSolicitacao   string `json:"descricaoSolicitacao,omitempty"`
	JustificativaAvaliacao string `json:"justificativaAvaliacao,omitempty"`
	AvaliadorNome          string `json:"avaliadorNome,omitempty"`
	DataAvaliacao          string `json:"dataAvaliacao,omitempty"`
}
