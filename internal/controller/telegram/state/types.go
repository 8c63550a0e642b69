package state

// UserState шаг диалога, в котором находится пользователь
type UserState string

const (
	StateNone UserState = ""

	// Вход: привязка Telegram к аккаунту FitnessHub
	StateLoginEmail    UserState = "login_email"
	StateLoginPassword UserState = "login_password"
)

// Ключи данных диалога
const (
	KeyEmail = "email"
)

// UserData состояние и временные данные диалога
type UserData struct {
	State UserState
	Data  map[string]string
}
