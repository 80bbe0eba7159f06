package format

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message/catalog"
)

// MessageID is the English text of a catalog message. It doubles as the
// fmt format string for its arguments.
type MessageID string

const (
	MsgInvalidNumber    MessageID = "Invalid numeric value"
	MsgOutOfRange       MessageID = "Value must be between %s and %s"
	MsgDomain           MessageID = "Invalid mathematical operation"
	MsgUnknownOperation MessageID = "Unknown operation: %s"
	MsgInvalidArity     MessageID = "Wrong number of values for %s: got %s"
)

var polish = map[MessageID]string{
	MsgInvalidNumber:    "Nieprawidłowa wartość liczbowa",
	MsgOutOfRange:       "Wartość musi być między %s a %s",
	MsgDomain:           "Nieprawidłowa operacja matematyczna",
	MsgUnknownOperation: "Nieznana operacja: %s",
	MsgInvalidArity:     "Nieprawidłowa liczba wartości dla %s: %s",
}

// messages is shared by every Locale; it is read-only after init.
var messages = newCatalog()

func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder()
	for id, text := range polish {
		mustSet(b, language.English, string(id), string(id))
		mustSet(b, language.Polish, string(id), text)
	}
	return b
}

func mustSet(b *catalog.Builder, tag language.Tag, key, msg string) {
	if err := b.SetString(tag, key, msg); err != nil {
		panic(err) // static catalog
	}
}
