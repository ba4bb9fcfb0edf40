package auth

import "strings"

var commonPasswords = map[string]struct{}{}

func init() {
	for _, pw := range strings.Fields(commonPasswordList) {
		commonPasswords[pw] = struct{}{}
	}
}

func isCommonPassword(password string) bool {
	_, ok := commonPasswords[strings.ToLower(strings.TrimSpace(password))]

	return ok
}

const commonPasswordList = `
123456 123456789 12345678 1234567890 password password1 password123 qwerty
qwerty123 qwertyuiop 1q2w3e4r 1qaz2wsx abc123 abcd1234 111111 000000 iloveyou
admin admin123 administrator welcome welcome1 letmein monkey dragon football
baseball sunshine princess master shadow superman batman trustno1 starwars
passw0rd p@ssw0rd changeme secret secret123 whatever freedom computer internet
michael jennifer jordan23 hunter2 charlie donald mustang access login zaq12wsx
asdfghjkl asdfasdf zxcvbnm zxcvbnm123 987654321 666666 888888 121212 654321
`
