// Package locale holds the engine-emitted strings: the AI persona prompt,
// warning notices, and chat failure messages. UI string catalogs live with
// the UI, not here.
package locale

import "fmt"

// Key identifies a translatable message.
type Key string

const (
	ChatFailed     Key = "chat_failed"
	NoCredential   Key = "no_credential"
	EmptyMessage   Key = "empty_message"
	MessageTooLong Key = "message_too_long"
	WarnHunger     Key = "warn_hunger"
	WarnDirty      Key = "warn_dirty"
	WarnSad        Key = "warn_sad"
)

var messages = map[string]map[Key]string{
	"en": {
		ChatFailed:     "Quack... I couldn't reach my thoughts right now. Try again in a bit.",
		NoCredential:   "No API key is set, so I can't chat yet. Add one in settings.",
		EmptyMessage:   "Say something first!",
		MessageTooLong: "That's too long for me — keep it under 50 characters.",
		WarnHunger:     "%s is getting really hungry!",
		WarnDirty:      "%s needs a bath soon!",
		WarnSad:        "%s is feeling lonely and sad!",
	},
	"tr": {
		ChatFailed:     "Vak... Şu an düşüncelerime ulaşamıyorum. Birazdan tekrar dene.",
		NoCredential:   "API anahtarı ayarlanmadığı için henüz sohbet edemiyorum.",
		EmptyMessage:   "Önce bir şey söyle!",
		MessageTooLong: "Bu benim için çok uzun — 50 karakterin altında tut.",
		WarnHunger:     "%s çok acıktı!",
		WarnDirty:      "%s'in banyoya ihtiyacı var!",
		WarnSad:        "%s kendini yalnız ve üzgün hissediyor!",
	},
}

// T returns the message for key in the given language, falling back to
// English for unknown languages or missing keys.
func T(lang string, key Key) string {
	if m, ok := messages[lang]; ok {
		if s, ok := m[key]; ok {
			return s
		}
	}
	return messages["en"][key]
}

// Warn returns the cause-specific low-need warning with the pet's name
// interpolated.
func Warn(lang string, key Key, name string) string {
	if name == "" {
		name = DefaultName(lang)
	}
	return fmt.Sprintf(T(lang, key), name)
}

// DefaultName is used when no duck_name has been configured.
func DefaultName(lang string) string {
	if lang == "tr" {
		return "Ördek"
	}
	return "Ducky"
}

// Persona returns the system prompt that keeps the assistant in character.
// Replies are kept short because the UI renders them in a small speech
// bubble next to the sprite.
func Persona(lang, name string) string {
	if name == "" {
		name = DefaultName(lang)
	}
	if lang == "tr" {
		return fmt.Sprintf(`Sen %s adında, masaüstünde yaşayan sevimli bir evcil ördeksin. `+
			`Neşeli, meraklı ve biraz muzipsin. Kısa cevaplar ver (en fazla iki cümle), `+
			`karakterden asla çıkma ve arada bir "vak" de. Türkçe cevap ver.`, name)
	}
	return fmt.Sprintf(`You are %s, a cute pet duck living on the user's desktop. `+
		`You are cheerful, curious and a little mischievous. Keep replies short `+
		`(two sentences at most), never break character, and quack occasionally.`, name)
}

// ObservePrompt is the user-role message sent when the scheduler asks the
// pet to comment on its surroundings unprompted.
func ObservePrompt(lang string) string {
	if lang == "tr" {
		return "Ekranıma bak ve gördüklerin hakkında kısa, sevimli bir yorum yap."
	}
	return "Look at my screen and make a short, cute remark about what you see."
}
