package entity

// Colaborador is the logged-in holder identity a voucher is issued to
type Colaborador struct {
	Matricula      string `json:"matricula"`
	Nome           string `json:"nome"`
	CPF            string `json:"cpf"`
	DataNascimento string `json:"dataNascimento"`
	Email          string `json:"email"`
}
