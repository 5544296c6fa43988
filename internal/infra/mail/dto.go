package mail

type WelcomeEmailData struct {
	Name    string
	Program string
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}
