package cli

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/dmitrijs2005/cadastro/internal/records"
)

func (a *App) List(ctx context.Context) error {
	opCtx, cancel := a.opContext(ctx)
	defer cancel()

	recs := a.service.List(opCtx)
	if len(recs) == 0 {
		fmt.Fprintln(a.out, "Nenhum cadastro")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNOME\tE-MAIL")
	for _, r := range recs {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.ID, r.Nome, r.Email)
	}
	return tw.Flush()
}

func (a *App) New(ctx context.Context) error {
	return a.fill(ctx, records.Form{})
}

// Edit opens the record for editing. An unknown id still opens an edit form,
// and submitting it reports the record as not found.
func (a *App) Edit(ctx context.Context, id string) error {
	opCtx, cancel := a.opContext(ctx)
	form := a.service.Open(opCtx, id)
	cancel()

	return a.fill(ctx, form)
}

func (a *App) Show(ctx context.Context, id string) error {
	opCtx, cancel := a.opContext(ctx)
	defer cancel()

	rec, err := a.service.Find(opCtx, id)
	if errors.Is(err, records.ErrNotFound) {
		fmt.Fprintln(a.out, "• "+records.MsgNotFound)
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "ID:     %s\nNome:   %s\nE-mail: %s\n", rec.ID, rec.Nome, rec.Email)
	return nil
}

// Check asks for a password and tells whether it matches the stored one.
func (a *App) Check(ctx context.Context, id string) error {
	pw, err := GetPassword(a.reader, "Senha", a.out)
	if err != nil {
		return err
	}

	opCtx, cancel := a.opContext(ctx)
	defer cancel()

	ok, err := a.service.CheckPassword(opCtx, id, pw)
	switch {
	case errors.Is(err, records.ErrNotFound):
		fmt.Fprintln(a.out, "• "+records.MsgNotFound)
		return nil
	case err != nil:
		return err
	case ok:
		fmt.Fprintln(a.out, "✔ "+records.MsgPasswordMatch)
	default:
		fmt.Fprintln(a.out, "• "+records.MsgPasswordMismatch)
	}
	return nil
}

// Delete asks for confirmation before removing the record.
func (a *App) Delete(ctx context.Context, id string) error {
	ok, err := Confirm(a.reader, fmt.Sprintf("Excluir o registro %s?", id), a.out)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "Cancelado")
		return nil
	}

	opCtx, cancel := a.opContext(ctx)
	defer cancel()

	_, err = a.service.Delete(opCtx, id)
	return err
}

func (a *App) Stats(ctx context.Context) error {
	return a.metrics.Print(a.out)
}

// fill prompts for every field and submits, asking again with the field
// messages shown until the form is accepted or input ends.
func (a *App) fill(ctx context.Context, form records.Form) error {
	if form.Mode() == records.ModeEdit {
		fmt.Fprintf(a.out, "Alterando cadastro %s (Enter mantém o valor atual)\n", form.ID)
	} else {
		fmt.Fprintln(a.out, "Novo cadastro")
	}

	var verr *records.ValidationError
	for {
		if err := a.prompt(&form, verr); err != nil {
			return err
		}

		opCtx, cancel := a.opContext(ctx)
		_, err := a.service.Submit(opCtx, form)
		cancel()

		if errors.As(err, &verr) {
			continue
		}
		return err
	}
}

func (a *App) prompt(form *records.Form, verr *records.ValidationError) error {
	hint := func(field string) {
		if verr != nil {
			if msg := verr.Message(field); msg != "" {
				fmt.Fprintln(a.out, "  ! "+msg)
			}
		}
	}

	var err error
	hint("nome")
	if form.Nome, err = GetTextWithDefault(a.reader, "Nome", form.Nome, a.out); err != nil {
		return err
	}
	hint("email")
	if form.Email, err = GetTextWithDefault(a.reader, "E-mail", form.Email, a.out); err != nil {
		return err
	}
	hint("senha")
	if form.Senha, err = GetPassword(a.reader, "Senha", a.out); err != nil {
		return err
	}
	hint("confirmaSenha")
	if form.ConfirmaSenha, err = GetPassword(a.reader, "Confirma senha", a.out); err != nil {
		return err
	}
	return nil
}
