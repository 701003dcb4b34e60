package ui

import "github.com/zhubert/thinkprompt/internal/config"

// RenderWelcome renders the banner printed when a session starts and after
// it is cleared. An app without a name or message has no banner.
func RenderWelcome(info config.AppInfo) string {
	text := info.Welcome()
	if text == "" {
		return ""
	}
	return WelcomeStyle.Render(text)
}
