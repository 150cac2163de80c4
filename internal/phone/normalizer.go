// Package phone canonicalizes phone numbers so they can be compared and stored uniformly.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"

	"github.com/dtroode/account-server/internal/model"
)

// UnknownRegion accepts only numbers written with an international prefix.
const UnknownRegion = "ZZ"

var _ model.PhoneNormalizer = (*Normalizer)(nil)

// Normalizer formats phone numbers as E.164.
type Normalizer struct {
	defaultRegion string
}

// NewNormalizer creates a Normalizer. defaultRegion is used when the caller gives
// no region hint; an empty value means UnknownRegion.
func NewNormalizer(defaultRegion string) *Normalizer {
	region := strings.ToUpper(strings.TrimSpace(defaultRegion))
	if region == "" {
		region = UnknownRegion
	}
	return &Normalizer{defaultRegion: region}
}

// Normalize returns the E.164 form of raw.
func (n *Normalizer) Normalize(raw, regionHint string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", model.NewError(model.KindInvalidPhone, "phone number must be given")
	}

	region := strings.ToUpper(strings.TrimSpace(regionHint))
	if region == "" {
		region = n.defaultRegion
	}

	num, err := phonenumbers.Parse(raw, region)
	if err != nil {
		return "", model.NewError(model.KindInvalidPhone, "phone number must be valid")
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", model.NewError(model.KindInvalidPhone, "phone number must be valid")
	}

	return phonenumbers.Format(num, phonenumbers.E164), nil
}
