package telegram

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const testBotToken = "123456:test-bot-token"

// signInitData собирает initData с валидным hash так же, как это
// делает Telegram на своей стороне.
func signInitData(t *testing.T, botToken string, fields map[string]string) string {
	t.Helper()

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+fields[k])
	}

	secretMac := hmac.New(sha256.New, []byte("WebAppData"))
	secretMac.Write([]byte(botToken))
	secret := secretMac.Sum(nil)

	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(strings.Join(pairs, "\n")))
	hash := hex.EncodeToString(mac.Sum(nil))

	values := url.Values{}
	for k, v := range fields {
		values.Set(k, v)
	}
	values.Set("hash", hash)
	return values.Encode()
}

func TestParseValidSignature(t *testing.T) {
	v := NewValidator(testBotToken)

	initData := signInitData(t, testBotToken, map[string]string{
		"user":      `{"id":42,"first_name":"Аня","username":"anya"}`,
		"auth_date": "1767200000",
	})

	user, err := v.Parse(initData)
	require.NoError(t, err)
	require.Equal(t, int64(42), user.ID)
	require.Equal(t, "42", user.Key())
	require.Equal(t, "anya", user.DisplayName())
}

func TestParseRejectsWrongToken(t *testing.T) {
	v := NewValidator(testBotToken)

	initData := signInitData(t, "999999:another-token", map[string]string{
		"user":      `{"id":42,"first_name":"Аня"}`,
		"auth_date": "1767200000",
	})

	_, err := v.Parse(initData)
	require.ErrorIs(t, err, ErrBadSignature)
}

func TestParseRejectsTamperedPayload(t *testing.T) {
	v := NewValidator(testBotToken)

	initData := signInitData(t, testBotToken, map[string]string{
		"user":      `{"id":42,"first_name":"Аня"}`,
		"auth_date": "1767200000",
	})
	tampered := strings.Replace(initData, "42", "43", 1)

	_, err := v.Parse(tampered)
	require.ErrorIs(t, err, ErrBadSignature)
}

func TestParseRejectsMissingHash(t *testing.T) {
	v := NewValidator(testBotToken)

	values := url.Values{}
	values.Set("user", `{"id":42,"first_name":"Аня"}`)

	_, err := v.Parse(values.Encode())
	require.ErrorIs(t, err, ErrBadSignature)
}

func TestParseWithoutTokenSkipsVerification(t *testing.T) {
	v := NewValidator("")

	values := url.Values{}
	values.Set("user", `{"id":7,"first_name":"Боб","last_name":"Гномов"}`)

	user, err := v.Parse(values.Encode())
	require.NoError(t, err)
	require.Equal(t, int64(7), user.ID)
	require.Equal(t, "Боб Гномов", user.DisplayName())
}

func TestParseRejectsGarbage(t *testing.T) {
	v := NewValidator("")

	cases := []string{
		"",
		"user=",
		"user=not-json",
		"user=%7B%22id%22%3A0%7D",
		"%zz",
	}
	for _, initData := range cases {
		_, err := v.Parse(initData)
		require.ErrorIs(t, err, ErrInvalidInitData, "initData %q", initData)
	}
}
