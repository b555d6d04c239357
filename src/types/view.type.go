package types

import (
	"strings"
	"time"
)

type ViewKind string

const (
	VIEW_DASHBOARD   ViewKind = "DASHBOARD"
	VIEW_CALENDAR    ViewKind = "CALENDAR"
	VIEW_CLIENTS     ViewKind = "CLIENTS"
	VIEW_FINANCE     ViewKind = "FINANCE"
	VIEW_REQUESTS    ViewKind = "REQUESTS"
	VIEW_SETTINGS    ViewKind = "SETTINGS"
	VIEW_PUBLIC_FORM ViewKind = "PUBLIC_FORM"
)

var viewKinds = []ViewKind{
	VIEW_DASHBOARD,
	VIEW_CALENDAR,
	VIEW_CLIENTS,
	VIEW_FINANCE,
	VIEW_REQUESTS,
	VIEW_SETTINGS,
	VIEW_PUBLIC_FORM,
}

// View selects a screen together with the data it is rendered for.
// Date is only read by CALENDAR and Query only by CLIENTS.
type View struct {
	Kind  ViewKind
	Date  *time.Time
	Query string
}

// ParseViewKind accepts kinds in any case, "public-form" style included.
func ParseViewKind(s string) (ViewKind, error) {
	k := ViewKind(strings.ToUpper(strings.ReplaceAll(s, "-", "_")))
	for _, v := range viewKinds {
		if v == k {
			return k, nil
		}
	}
	return "", NewValidationError("view", "unknown view %q", s)
}
