package features

// WriteEnvFile writes the raw environment-variable text block to .env
// in the project root, wholesale.
func (in *Installer) WriteEnvFile(content string) error {
	if content != "" && content[len(content)-1] != '\n' {
		content += "\n"
	}
	return in.writeFile(".env", []byte(content))
}
