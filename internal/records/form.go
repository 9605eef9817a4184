package records

// Mode tells whether a submitted form creates or edits a record.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "create"
}

// Form is the registration form as typed by the user.
type Form struct {
	ID            string `json:"id"`
	Nome          string `json:"nome" validate:"required"`
	Email         string `json:"email" validate:"required,min=6,email"`
	Senha         string `json:"senha" validate:"required,senhamin,senhamax"`
	ConfirmaSenha string `json:"confirmaSenha" validate:"required,eqfield=Senha"`
}

// Mode is ModeEdit when the form carries an id.
func (f Form) Mode() Mode {
	if f.ID == "" {
		return ModeCreate
	}
	return ModeEdit
}

// FormFor pre-populates an edit form. The stored password is sealed, so the
// password fields start blank and must be entered again.
func FormFor(r Record) Form {
	return Form{ID: r.ID, Nome: r.Nome, Email: r.Email}
}

// record returns the Record the form describes, password still in clear.
func (f Form) record() Record {
	return Record{
		ID:            f.ID,
		Nome:          f.Nome,
		Email:         f.Email,
		Senha:         f.Senha,
		ConfirmaSenha: f.ConfirmaSenha,
	}
}
