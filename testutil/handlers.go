package testutil

import (
	"errors"
	"strings"
)

// ErrDisconnect makes a handler drop the connection after its response.
var ErrDisconnect = errors.New("testutil: disconnect")

// Reply pairs a canned response with an optional disconnect.
type Reply struct {
	Response   string
	Disconnect bool
}

// ScriptedHandler answers exact command lines (including CRLF) from replies.
// QUIT is answered with 205 unless scripted. Anything else gets 500.
func ScriptedHandler(replies map[string]Reply) Handler {
	return func(cmd string) (string, error) {
		if r, ok := replies[cmd]; ok {
			if r.Disconnect {
				return r.Response, ErrDisconnect
			}
			return r.Response, nil
		}
		if strings.EqualFold(strings.TrimSpace(cmd), "QUIT") {
			return "205 Bye\r\n", nil
		}
		return "500 Unknown Command\r\n", nil
	}
}

// RFC3977Handler answers the commands used in framing round trips: DATE,
// HELP, GROUP, LISTGROUP and CAPABILITIES, all for group misc.test.
func RFC3977Handler() Handler {
	return ScriptedHandler(map[string]Reply{
		"DATE\r\n": {Response: "111 19990623135624\r\n"},
		"HELP\r\n": {Response: "100 Help text follows\r\n" +
			"ARTICLE [message-ID|number]\r\n" +
			"GROUP newsgroup\r\n" +
			"LISTGROUP [newsgroup [range]]\r\n" +
			".\r\n"},
		"GROUP misc.test\r\n": {Response: "211 1234 3000234 3002322 misc.test\r\n"},
		"LISTGROUP misc.test\r\n": {Response: "211 2000 3000234 3002322 misc.test list follows\r\n" +
			"3000234\r\n" +
			"3000237\r\n" +
			"3000238\r\n" +
			".\r\n"},
		"CAPABILITIES\r\n": {Response: "101 Capability list:\r\n" +
			"VERSION 2\r\n" +
			"READER\r\n" +
			".\r\n"},
	})
}
