package smartpaste

import (
	"regexp"
	"strings"

	"ptalk-server/models"
)

var registerLinePattern = regexp.MustCompile(`^(.+?)[:：=]\s*(.+)$`)

// RegisterFields holds whatever a pasted registration snippet provided.
// Empty fields were not present.
type RegisterFields struct {
	Email         string               `json:"email,omitempty"`
	Password      string               `json:"password,omitempty"`
	ContactName   string               `json:"contactName,omitempty"`
	ContactPhone  string               `json:"contactPhone,omitempty"`
	ContactMethod models.ContactMethod `json:"contactMethod,omitempty"`
	LineID        string               `json:"lineId,omitempty"`
}

// ParseRegisterText reads "key: value" lines such as
//
//	帳號:111@gmail.com
//	電話:0912345678
//	line:a0912345678
//
// Unknown keys and malformed lines are ignored.
func ParseRegisterText(text string) RegisterFields {
	var fields RegisterFields
	for _, line := range strings.Split(normalizeLineEndings(text), "\n") {
		trimmed := trim(line)
		if trimmed == "" {
			continue
		}
		m := registerLinePattern.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		key := strings.ToLower(trim(m[1]))
		value := trim(m[2])

		switch key {
		case "帳號", "email", "e-mail", "信箱":
			fields.Email = value
		case "密碼", "password", "pwd":
			fields.Password = value
		case "負責人姓名", "姓名", "name", "負責人":
			fields.ContactName = value
		case "電話", "phone", "tel", "手機":
			fields.ContactPhone = value
		case "聯絡方式", "contact", "聯繫方式":
			switch strings.ToLower(value) {
			case "line":
				fields.ContactMethod = models.CONTACT_METHOD_LINE
			case "電話", "phone":
				fields.ContactMethod = models.CONTACT_METHOD_PHONE
			}
		case "line", "lineid", "line id":
			fields.LineID = value
			if fields.ContactMethod == "" {
				fields.ContactMethod = models.CONTACT_METHOD_LINE
			}
		}
	}
	return fields
}
