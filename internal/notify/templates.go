package notify

import (
	"bytes"
	"fmt"
	"html/template"
)

var trainerWelcomeTmpl = template.Must(template.New("welcome").Parse(`<p>Здравствуйте, {{.Name}}!</p>
<p>Для вас создан аккаунт тренера в FitnessHub.</p>
<p>Логин: <b>{{.Email}}</b>. Пароль выдаст администратор.</p>`))

// TrainerWelcome письмо новому тренеру
func TrainerWelcome(name, email string) (Message, error) {
	var buf bytes.Buffer
	err := trainerWelcomeTmpl.Execute(&buf, struct{ Name, Email string }{name, email})
	if err != nil {
		return Message{}, fmt.Errorf("render welcome email: %w", err)
	}
	return Message{
		To:      email,
		Subject: "Добро пожаловать в FitnessHub",
		HTML:    buf.String(),
	}, nil
}
