// Package qrtoken は社員QRコードに埋め込むペイロードの符号化・検証を行う。
// セッショントークン(JWT)とは独立したトークン系で、所持要素としてのみ機能する。
package qrtoken

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
)

var ErrMalformed = errors.New("malformed qr token")

// Payload: 同一(employee_id, v)なら常に同じ文字列になる（QRを再発行しても画像が変わらない）。
// v は社員ごとのローテーション番号。ローテートすると旧コードは即失効する。
type Payload struct {
	EmployeeID string `json:"employee_id"`
	Version    int    `json:"v"`
}

type Codec struct {
	secret []byte
}

func NewCodec(secret []byte) *Codec {
	return &Codec{secret: secret}
}

func (c *Codec) sign(body []byte) []byte {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write(body)
	return mac.Sum(nil)
}

// Encode: base64url(JSON) + "." + base64url(HMAC-SHA256)
func (c *Codec) Encode(employeeID string, version int) (string, error) {
	if employeeID == "" {
		return "", ErrMalformed
	}
	body, err := json.Marshal(Payload{EmployeeID: employeeID, Version: version})
	if err != nil {
		return "", err
	}
	enc := base64.RawURLEncoding
	return enc.EncodeToString(body) + "." + enc.EncodeToString(c.sign(body)), nil
}

// Decode: 形式不正・署名不一致はすべて ErrMalformed に畳む。
func (c *Codec) Decode(s string) (Payload, error) {
	var p Payload

	i := strings.IndexByte(s, '.')
	if i <= 0 || i == len(s)-1 {
		return p, ErrMalformed
	}
	enc := base64.RawURLEncoding
	body, err := enc.DecodeString(s[:i])
	if err != nil {
		return p, ErrMalformed
	}
	sig, err := enc.DecodeString(s[i+1:])
	if err != nil {
		return p, ErrMalformed
	}
	if !hmac.Equal(sig, c.sign(body)) {
		return p, ErrMalformed
	}
	if err := json.Unmarshal(body, &p); err != nil {
		return p, ErrMalformed
	}
	if p.EmployeeID == "" {
		return p, ErrMalformed
	}
	return p, nil
}
