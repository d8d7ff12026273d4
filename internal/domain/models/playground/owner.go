package playground

import (
	"bytes"
	"encoding/json"
)

// Owner records who owns a project. It is either OwnedBy(identity) or
// Unowned; an unowned project is open to every authenticated identity.
// Serialized as the owner's identity string or JSON null.
type Owner struct {
	userID string
}

// Unowned returns the owner value of a public project.
func Unowned() Owner {
	return Owner{}
}

// OwnedBy returns an owner bound to the given identity.
// An empty identity yields Unowned.
func OwnedBy(userID string) Owner {
	return Owner{userID: userID}
}

// OwnerFromPtr converts a nullable storage column into an Owner.
func OwnerFromPtr(userID *string) Owner {
	if userID == nil {
		return Unowned()
	}
	return OwnedBy(*userID)
}

// IsOwned reports whether an owner is recorded.
func (o Owner) IsOwned() bool {
	return o.userID != ""
}

// UserID returns the owner's identity, or "" for an unowned project.
func (o Owner) UserID() string {
	return o.userID
}

// Ptr returns the owner as a nullable value for storage.
func (o Owner) Ptr() *string {
	if !o.IsOwned() {
		return nil
	}
	id := o.userID
	return &id
}

// Permits reports whether identity may act on a project with this owner.
// The caller is responsible for rejecting empty identities first.
func (o Owner) Permits(identity string) bool {
	switch {
	case !o.IsOwned():
		return true
	default:
		return o.userID == identity
	}
}

// MarshalJSON implements json.Marshaler.
func (o Owner) MarshalJSON() ([]byte, error) {
	if !o.IsOwned() {
		return []byte("null"), nil
	}
	return json.Marshal(o.userID)
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *Owner) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		*o = Unowned()
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*o = OwnedBy(s)
	return nil
}
