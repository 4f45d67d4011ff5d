package telegram

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

var (
	ErrInvalidInitData = errors.New("invalid init data")
	ErrBadSignature    = errors.New("init data signature mismatch")
)

// User пользователь Telegram Mini App из initData
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	Username  string `json:"username,omitempty"`
}

// Key строковый идентификатор пользователя для хранилищ
func (u User) Key() string {
	return strconv.FormatInt(u.ID, 10)
}

// DisplayName имя для показа в игре
func (u User) DisplayName() string {
	if u.Username != "" {
		return u.Username
	}
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Validator проверяет подпись initData Telegram Mini App.
// Без токена бота (локальная разработка) подпись не проверяется,
// но данные по-прежнему парсятся.
type Validator struct {
	secret []byte
}

// NewValidator строит валидатор: секрет считается как HMAC-SHA256 от токена бота
// с ключом "WebAppData", как требует Telegram.
func NewValidator(botToken string) *Validator {
	v := &Validator{}
	if botToken != "" {
		mac := hmac.New(sha256.New, []byte("WebAppData"))
		mac.Write([]byte(botToken))
		v.secret = mac.Sum(nil)
	}
	return v
}

// Parse проверяет подпись initData и возвращает пользователя
func (v *Validator) Parse(initData string) (*User, error) {
	values, err := url.ParseQuery(initData)
	if err != nil {
		return nil, ErrInvalidInitData
	}

	userJSON := values.Get("user")
	if userJSON == "" {
		return nil, ErrInvalidInitData
	}

	if v.secret != nil {
		if err := v.verify(values); err != nil {
			return nil, err
		}
	}

	var user User
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil || user.ID == 0 {
		return nil, ErrInvalidInitData
	}
	return &user, nil
}

// verify сверяет hash из initData с HMAC от data-check-string:
// все пары кроме hash, отсортированные по ключу, через \n.
func (v *Validator) verify(values url.Values) error {
	gotHash := values.Get("hash")
	if gotHash == "" {
		return ErrBadSignature
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		if k == "hash" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+values.Get(k))
	}

	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(strings.Join(pairs, "\n")))
	want := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(want), []byte(gotHash)) {
		return ErrBadSignature
	}
	return nil
}
