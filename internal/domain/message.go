package domain

// Message es un PRIVMSG ya decodificado por el adapter.
type Message struct {
	Channel     string
	UserID      string
	Login       string
	DisplayName string
	Text        string

	// Metadatos crudos del transporte (tags IRC); Badges ya viene parseado.
	Badges map[string]int
	Tags   map[string]string
}

// Caller es el contexto efímero de quien invoca un comando.
type Caller struct {
	Login       string
	DisplayName string
	Channel     string
	Level       Level
	Tags        map[string]string
}

// Display devuelve el display-name si existe, si no el login.
func (c Caller) Display() string {
	if c.DisplayName != "" {
		return c.DisplayName
	}
	return c.Login
}
