package usuarios

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// FieldError is a single validation violation: the offending field plus a
// human-readable message.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var (
	emailRegex    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	telefoneRegex = regexp.MustCompile(`^\(\d{2}\) \d{5}-\d{4}$`)
)

// rule is one predicate+message pair. Rules are evaluated independently so a
// caller sees every violation in one response, not just the first.
type rule struct {
	field   string
	ok      func() bool
	message string
}

func runRules(rules []rule) []FieldError {
	var violations []FieldError
	for _, r := range rules {
		if !r.ok() {
			violations = append(violations, FieldError{Field: r.field, Message: r.message})
		}
	}
	return violations
}

// ValidateCreate checks a create payload against the business rules,
// evaluating age as of today. It never mutates the request.
func ValidateCreate(req *CreateUsuarioRequest, today time.Time) []FieldError {
	rules := []rule{
		{"nome", func() bool { return nomeValido(req.Nome) }, nomeMessage(req.Nome)},
		{"email", func() bool { return emailValido(req.Email) }, emailMessage(req.Email)},
		{"senha", func() bool { return senhaValida(req.Senha) }, senhaMessage(req.Senha)},
		{"data_nascimento", func() bool { return nascimentoValido(req.DataNascimento, today) }, nascimentoMessage(req.DataNascimento, today)},
		{"telefone", func() bool { return telefoneValido(req.Telefone) }, "Telefone deve estar no formato (XX) XXXXX-XXXX"},
	}
	return runRules(rules)
}

// ValidateUpdate checks an update payload. The rules match ValidateCreate
// except that senha is not part of the update payload and is not validated.
func ValidateUpdate(req *UpdateUsuarioRequest, today time.Time) []FieldError {
	rules := []rule{
		{"nome", func() bool { return nomeValido(req.Nome) }, nomeMessage(req.Nome)},
		{"email", func() bool { return emailValido(req.Email) }, emailMessage(req.Email)},
		{"data_nascimento", func() bool { return nascimentoValido(req.DataNascimento, today) }, nascimentoMessage(req.DataNascimento, today)},
		{"telefone", func() bool { return telefoneValido(req.Telefone) }, "Telefone deve estar no formato (XX) XXXXX-XXXX"},
	}
	return runRules(rules)
}

func nomeValido(nome string) bool {
	n := utf8.RuneCountInString(nome)
	return nome != "" && n >= 3 && n <= 100
}

func nomeMessage(nome string) string {
	if nome == "" {
		return "Nome é obrigatório"
	}
	return "Nome deve ter entre 3 e 100 caracteres"
}

func emailValido(email string) bool {
	return email != "" && emailRegex.MatchString(email)
}

func emailMessage(email string) string {
	if email == "" {
		return "Email é obrigatório"
	}
	return "Email deve ser válido"
}

func senhaValida(senha string) bool {
	return len(senha) >= 6
}

func senhaMessage(senha string) string {
	if senha == "" {
		return "Senha é obrigatória"
	}
	return "Senha deve ter no mínimo 6 caracteres"
}

func nascimentoValido(nascimento string, today time.Time) bool {
	if nascimento == "" {
		return false
	}
	data, err := time.Parse(DateLayout, nascimento)
	if err != nil {
		return false
	}
	return idadeEm(data, today) >= 18
}

func nascimentoMessage(nascimento string, today time.Time) string {
	if nascimento == "" {
		return "Data de nascimento é obrigatória"
	}
	if _, err := time.Parse(DateLayout, nascimento); err != nil {
		return "Data de nascimento deve estar no formato AAAA-MM-DD"
	}
	return "Usuário deve ter pelo menos 18 anos"
}

// telefoneValido accepts absent values; when present the phone must match
// (XX) XXXXX-XXXX.
func telefoneValido(telefone string) bool {
	if telefone == "" {
		return true
	}
	return telefoneRegex.MatchString(telefone)
}

// idadeEm computes age by calendar-year difference, decremented by one when
// the birth anniversary has not yet occurred in the current year. This is the
// exact-anniversary rule, not a 365-day approximation.
func idadeEm(nascimento, hoje time.Time) int {
	idade := hoje.Year() - nascimento.Year()
	if hoje.Month() < nascimento.Month() ||
		(hoje.Month() == nascimento.Month() && hoje.Day() < nascimento.Day()) {
		idade--
	}
	return idade
}

// normalizeEmail lowercases the address; emails are always stored lowercase.
func normalizeEmail(email string) string {
	return strings.ToLower(email)
}
