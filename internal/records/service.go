package records

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/cadastro/internal/logging"
	"github.com/dmitrijs2005/cadastro/internal/metrics"
)

// User feedback messages.
const (
	MsgCreated  = "Cadastro realizado com sucesso"
	MsgUpdated  = "Cadastro alterado com sucesso"
	MsgDeleted  = "Registro excluido com sucesso"
	MsgNotFound = "Registro não localizado!"

	MsgPasswordMatch    = "Senha confere"
	MsgPasswordMismatch = "Senha não confere"
)

// Notifier shows short feedback messages to the user.
type Notifier interface {
	Success(msg string)
	Info(msg string)
}

// PasswordHasher seals a password before it is stored and checks a password
// against a sealed value.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, sealed string) (bool, error)
}

// Outcome is the result of a submit or delete.
type Outcome int

const (
	OutcomeCreated Outcome = iota + 1
	OutcomeUpdated
	OutcomeDeleted
	OutcomeNotFound
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCreated:
		return "created"
	case OutcomeUpdated:
		return "updated"
	case OutcomeDeleted:
		return "deleted"
	case OutcomeNotFound:
		return "not found"
	}
	return "unknown"
}

// Result is what Submit did. Record is the stored record when Outcome is
// OutcomeCreated or OutcomeUpdated.
type Result struct {
	Outcome Outcome
	Record  Record
}

// Service drives the registration form over a Repository.
type Service struct {
	repo      *Repository
	validator *Validator
	hasher    PasswordHasher
	notify    Notifier
	log       logging.Logger
	metrics   metrics.Recorder
}

func NewService(repo *Repository, v *Validator, h PasswordHasher, n Notifier, log logging.Logger, m metrics.Recorder) *Service {
	if m == nil {
		m = metrics.Nop{}
	}
	return &Service{repo: repo, validator: v, hasher: h, notify: n, log: log, metrics: m}
}

// Open returns the form to show for id. An empty id gives a blank create
// form. Any other id stays in edit mode: when the record cannot be loaded the
// form carries only the id, and a later Submit reports it as not found.
func (s *Service) Open(ctx context.Context, id string) Form {
	if id == "" {
		return Form{}
	}

	rec, err := s.repo.FindByID(ctx, id)
	switch {
	case err == nil:
		s.metrics.Observe("open", metrics.OutcomeOK)
		return FormFor(rec)
	case errors.Is(err, ErrNotFound):
		s.metrics.Observe("open", metrics.OutcomeNotFound)
		s.log.Debug(ctx, "record to edit not found", "id", id)
	default:
		s.metrics.Observe("open", metrics.OutcomeError)
		s.log.Error(ctx, "failed to load record", "id", id, "error", err)
	}
	return Form{ID: id}
}

// Find returns the record with id, or ErrNotFound.
func (s *Service) Find(ctx context.Context, id string) (Record, error) {
	rec, err := s.repo.FindByID(ctx, id)
	switch {
	case err == nil:
		s.metrics.Observe("find", metrics.OutcomeOK)
	case errors.Is(err, ErrNotFound):
		s.metrics.Observe("find", metrics.OutcomeNotFound)
	default:
		s.metrics.Observe("find", metrics.OutcomeError)
		s.log.Error(ctx, "failed to load record", "id", id, "error", err)
	}
	return rec, err
}

// CheckPassword reports whether password matches the one stored for id. A
// missing id returns ErrNotFound.
func (s *Service) CheckPassword(ctx context.Context, id, password string) (bool, error) {
	rec, err := s.repo.FindByID(ctx, id)
	switch {
	case errors.Is(err, ErrNotFound):
		s.metrics.Observe("check", metrics.OutcomeNotFound)
		return false, err
	case err != nil:
		return false, s.storageFailure(ctx, "check", err)
	}

	ok, err := s.hasher.Verify(password, rec.Senha)
	if err != nil {
		s.metrics.Observe("check", metrics.OutcomeError)
		s.log.Warn(ctx, "stored password is not a valid hash", "id", id, "error", err)
		return false, fmt.Errorf("check: %w", err)
	}
	s.metrics.Observe("check", metrics.OutcomeOK)
	return ok, nil
}

// Submit validates f and creates or updates the record it describes.
//
// Invalid input returns a *ValidationError and stores nothing. An edit of a
// missing record notifies MsgNotFound and returns OutcomeNotFound with a nil
// error. Storage failures are logged and returned wrapped, with no notice to
// the user.
func (s *Service) Submit(ctx context.Context, f Form) (Result, error) {
	op := "create"
	if f.Mode() == ModeEdit {
		op = "update"
	}

	if err := s.validator.Validate(f); err != nil {
		s.metrics.Observe(op, metrics.OutcomeInvalid)
		return Result{}, err
	}

	rec := f.record()
	sealed, err := s.hasher.Hash(f.Senha)
	if err != nil {
		s.metrics.Observe(op, metrics.OutcomeError)
		s.log.Error(ctx, "failed to hash password", "error", err)
		return Result{}, fmt.Errorf("failed to hash password: %w", err)
	}
	rec.Senha = sealed
	rec.ConfirmaSenha = ""

	if f.Mode() == ModeCreate {
		stored, err := s.repo.Create(ctx, rec)
		if err != nil {
			return Result{}, s.storageFailure(ctx, op, err)
		}
		s.metrics.Observe(op, metrics.OutcomeOK)
		s.log.Info(ctx, "record created", "id", stored.ID)
		s.notify.Success(MsgCreated)
		return Result{Outcome: OutcomeCreated, Record: stored}, nil
	}

	stored, err := s.repo.UpdateByID(ctx, f.ID, rec)
	switch {
	case errors.Is(err, ErrNotFound):
		s.metrics.Observe(op, metrics.OutcomeNotFound)
		s.log.Warn(ctx, "record to update not found", "id", f.ID)
		s.notify.Info(MsgNotFound)
		return Result{Outcome: OutcomeNotFound}, nil
	case err != nil:
		return Result{}, s.storageFailure(ctx, op, err)
	}
	s.metrics.Observe(op, metrics.OutcomeOK)
	s.log.Info(ctx, "record updated", "id", stored.ID)
	s.notify.Success(MsgUpdated)
	return Result{Outcome: OutcomeUpdated, Record: stored}, nil
}

// Delete removes the record with id. A missing id notifies MsgNotFound and
// returns OutcomeNotFound with a nil error.
func (s *Service) Delete(ctx context.Context, id string) (Outcome, error) {
	err := s.repo.DeleteByID(ctx, id)
	switch {
	case errors.Is(err, ErrNotFound):
		s.metrics.Observe("delete", metrics.OutcomeNotFound)
		s.log.Warn(ctx, "record to delete not found", "id", id)
		s.notify.Info(MsgNotFound)
		return OutcomeNotFound, nil
	case err != nil:
		return 0, s.storageFailure(ctx, "delete", err)
	}
	s.metrics.Observe("delete", metrics.OutcomeOK)
	s.log.Info(ctx, "record deleted", "id", id)
	s.notify.Success(MsgDeleted)
	return OutcomeDeleted, nil
}

// List returns every record. A collection that cannot be loaded is logged
// and shown as empty.
func (s *Service) List(ctx context.Context) []Record {
	recs, err := s.repo.LoadAll(ctx)
	if err != nil {
		s.metrics.Observe("list", metrics.OutcomeError)
		s.log.Error(ctx, "failed to load collection", "error", err)
		return []Record{}
	}
	s.metrics.Observe("list", metrics.OutcomeOK)
	return recs
}

func (s *Service) storageFailure(ctx context.Context, op string, err error) error {
	s.metrics.Observe(op, metrics.OutcomeError)
	s.log.Error(ctx, "failed to "+op+" record", "error", err)
	return fmt.Errorf("%s: %w", op, err)
}
