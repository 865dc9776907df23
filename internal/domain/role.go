package domain

// ViewerRole — роль текущего пользователя, вычисляется провайдером аутентификации
// один раз на сессию и передаётся сквозь все слои явно.
type ViewerRole string

const (
	RoleAnonymous ViewerRole = "anonymous"
	RoleUser      ViewerRole = "user"
	RoleAdmin     ViewerRole = "admin"
)

// ParseViewerRole приводит произвольную строку к известной роли.
// Неизвестные значения считаются анонимными.
func ParseViewerRole(s string) ViewerRole {
	switch s {
	case string(RoleAdmin):
		return RoleAdmin
	case string(RoleUser):
		return RoleUser
	default:
		return RoleAnonymous
	}
}

// IsAdmin сообщает, имеет ли роль права модерации.
func (r ViewerRole) IsAdmin() bool {
	return r == RoleAdmin
}
