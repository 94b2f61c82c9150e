// Package signature implements the Uploadcare authentication schemes.
//
// The REST API accepts either a "simple" Authorization header carrying the
// raw credentials or a sign-based header where the secret key signs the
// request (method, body digest, content type, date and URI). The Upload API
// authenticates via form fields: the public key alone, or the public key
// plus an HMAC-SHA256 signature over an expiry timestamp.
package signature

import (
	"crypto/hmac"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"
)

const (
	simpleAuthScheme    = "Uploadcare.Simple"
	signBasedAuthScheme = "Uploadcare"

	// SignedUploadTTL is how long a signed upload remains valid.
	SignedUploadTTL = 60 * time.Second
)

// DateFormat is the layout of the Date header included in signed REST
// requests. It matches http.TimeFormat.
const DateFormat = "Mon, 02 Jan 2006 15:04:05 GMT"

// Simple returns the Authorization header value for the simple auth scheme.
func Simple(publicKey, secretKey string) string {
	return fmt.Sprintf("%s %s:%s", simpleAuthScheme, publicKey, secretKey)
}

// SignBased returns the Authorization header value for the sign-based
// scheme. The uri argument must be the request path including the raw query
// string, exactly as sent on the wire.
func SignBased(publicKey, secretKey, method string, body []byte, contentType, date, uri string) string {
	bodyHash := md5.Sum(body)

	signData := method + "\n" +
		hex.EncodeToString(bodyHash[:]) + "\n" +
		contentType + "\n" +
		date + "\n" +
		uri

	mac := hmac.New(sha1.New, []byte(secretKey))
	mac.Write([]byte(signData))

	return fmt.Sprintf("%s %s:%s", signBasedAuthScheme, publicKey, hex.EncodeToString(mac.Sum(nil)))
}

// UploadSignature computes the hex HMAC-SHA256 signature over the expiry
// timestamp used by signed uploads.
func UploadSignature(secretKey string, expire int64) string {
	mac := hmac.New(sha256.New, []byte(secretKey))
	mac.Write([]byte(strconv.FormatInt(expire, 10)))
	return hex.EncodeToString(mac.Sum(nil))
}
