package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors. Messages are user-facing and returned verbatim
// in API responses, hence the Russian wording.
var (
	ErrNotFound         = NewDomainError("NOT_FOUND", "Нету данных")
	ErrAlreadyExists    = NewDomainError("ALREADY_EXISTS", "Запись уже существует")
	ErrInvalidInput     = NewDomainError("INVALID_INPUT", "Неверный формат запроса")
	ErrMissingArguments = NewDomainError("MISSING_ARGUMENTS", "Не указаны все необходимые аргументы")
	ErrAuthRequired     = NewDomainError("AUTH_REQUIRED", "Необходима авторизация")
	ErrShopsOnly        = NewDomainError("SHOPS_ONLY", "Только для магазинов")
	ErrAdminOnly        = NewDomainError("ADMIN_ONLY", "Только для администраторов")
	ErrInvalidState     = NewDomainError("INVALID_STATE", "Неправильно указан статус")
	ErrInvalidContact   = NewDomainError("INVALID_CONTACT", "Неправильно указан id контакта")
	ErrAlreadyConfirmed = NewDomainError("ALREADY_CONFIRMED", "Заказ уже подтверждён")
	ErrImportInProgress = NewDomainError("IMPORT_IN_PROGRESS", "Импорт для этого магазина уже выполняется")
)

// AuthCodes are error codes that map to HTTP 403 instead of a soft failure.
var AuthCodes = map[string]bool{
	"AUTH_REQUIRED": true,
	"SHOPS_ONLY":    true,
	"ADMIN_ONLY":    true,
}
