package stripe

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

// ErrSignatureInvalid covers every verification failure: missing or
// malformed header, signature mismatch, stale timestamp. Treated as an
// authentication failure, never retried.
var ErrSignatureInvalid = errors.New("webhook signature invalid")

// DefaultTolerance bounds how old a signed timestamp may be before the
// delivery is rejected as a possible replay.
const DefaultTolerance = 5 * time.Minute

// ConstructEvent verifies the Stripe-Signature header against the raw
// request body and unmarshals the event. The payload must be the exact
// bytes received on the wire; re-encoding breaks the signature.
func ConstructEvent(payload []byte, sigHeader, secret string) (Event, error) {
	return constructEvent(payload, sigHeader, secret, DefaultTolerance, time.Now())
}

func constructEvent(payload []byte, sigHeader, secret string, tolerance time.Duration, now time.Time) (Event, error) {
	var event Event

	ts, sigs, err := parseSignatureHeader(sigHeader)
	if err != nil {
		return event, err
	}

	if now.Sub(time.Unix(ts, 0)) > tolerance {
		return event, fmt.Errorf("%w: timestamp outside tolerance", ErrSignatureInvalid)
	}

	expected := computeSignature(ts, payload, secret)
	matched := false
	for _, sig := range sigs {
		got, err := hex.DecodeString(sig)
		if err != nil {
			continue
		}
		if hmac.Equal(got, expected) {
			matched = true
			break
		}
	}
	if !matched {
		return event, fmt.Errorf("%w: no matching v1 signature", ErrSignatureInvalid)
	}

	if err := json.Unmarshal(payload, &event); err != nil {
		return event, fmt.Errorf("unmarshal event: %w", err)
	}
	return event, nil
}

// parseSignatureHeader splits "t=<unix>,v1=<hex>[,v1=<hex>...]".
func parseSignatureHeader(header string) (int64, []string, error) {
	if header == "" {
		return 0, nil, fmt.Errorf("%w: missing signature header", ErrSignatureInvalid)
	}

	var (
		ts   int64
		sigs []string
	)
	for _, pair := range strings.Split(header, ",") {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 {
			return 0, nil, fmt.Errorf("%w: malformed signature header", ErrSignatureInvalid)
		}
		switch parts[0] {
		case "t":
			v, err := strconv.ParseInt(parts[1], 10, 64)
			if err != nil {
				return 0, nil, fmt.Errorf("%w: malformed timestamp", ErrSignatureInvalid)
			}
			ts = v
		case "v1":
			sigs = append(sigs, parts[1])
		}
	}

	if ts == 0 || len(sigs) == 0 {
		return 0, nil, fmt.Errorf("%w: missing timestamp or signature", ErrSignatureInvalid)
	}
	return ts, sigs, nil
}

func computeSignature(ts int64, payload []byte, secret string) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", ts)
	mac.Write(payload)
	return mac.Sum(nil)
}

// SignPayload builds a valid Stripe-Signature header for a payload.
// Used by tests and local tooling to simulate processor deliveries.
func SignPayload(payload []byte, secret string, at time.Time) string {
	ts := at.Unix()
	sig := computeSignature(ts, payload, secret)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(sig))
}
