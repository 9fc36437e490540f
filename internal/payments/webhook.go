package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrStaleTimestamp   = errors.New("webhook timestamp outside tolerance")
)

// DefaultTolerance bounds how old a signed payload may be before it is
// rejected as a replay.
const DefaultTolerance = 5 * time.Minute

// ConstructEvent verifies the signature header against the shared secret
// and only then parses the payload. The header format is
// "t=<epoch seconds>,v1=<hex hmac-sha256 of "<t>.<payload>">".
func ConstructEvent(payload []byte, header, secret string) (Event, error) {
	return constructEventAt(payload, header, secret, time.Now(), DefaultTolerance)
}

func constructEventAt(payload []byte, header, secret string, now time.Time, tolerance time.Duration) (Event, error) {
	var event Event

	ts, sig, err := parseSignatureHeader(header)
	if err != nil {
		return event, err
	}

	if now.Sub(time.Unix(ts, 0)) > tolerance {
		return event, ErrStaleTimestamp
	}

	expected := computeSignature(payload, ts, secret)
	if !hmac.Equal([]byte(sig), []byte(expected)) {
		return event, ErrInvalidSignature
	}

	if err := json.Unmarshal(payload, &event); err != nil {
		return event, fmt.Errorf("parse webhook payload: %w", err)
	}
	return event, nil
}

func parseSignatureHeader(header string) (int64, string, error) {
	var ts int64
	var sig string

	for _, part := range strings.Split(header, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "t":
			parsed, err := strconv.ParseInt(kv[1], 10, 64)
			if err != nil {
				return 0, "", ErrInvalidSignature
			}
			ts = parsed
		case "v1":
			sig = kv[1]
		}
	}

	if ts == 0 || sig == "" {
		return 0, "", ErrInvalidSignature
	}
	return ts, sig, nil
}

func computeSignature(payload []byte, ts int64, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strconv.FormatInt(ts, 10)))
	mac.Write([]byte("."))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// SignPayload builds a valid signature header for a payload. Used by the
// local test harness; the processor does the same on its side.
func SignPayload(payload []byte, secret string, at time.Time) string {
	ts := at.Unix()
	return fmt.Sprintf("t=%d,v1=%s", ts, computeSignature(payload, ts, secret))
}
