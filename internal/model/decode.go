package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/roach88/objstore/internal/attr"
)

var (
	// ErrMissingTag means the mapping has no usable __class__ attribute.
	ErrMissingTag = errors.New("missing __class__ tag")

	// ErrUnknownKind means the __class__ tag names no registered kind.
	ErrUnknownKind = errors.New("unknown kind")

	// ErrMissingAttribute marks a reserved attribute that was absent.
	ErrMissingAttribute = errors.New("missing attribute")
)

// Issue records one attribute that could not be taken as stored.
// The entity carries a substitute value instead.
type Issue struct {
	Attribute string
	Err       error
}

func (i Issue) Error() string {
	return fmt.Sprintf("%s: %v", i.Attribute, i.Err)
}

func (i Issue) Unwrap() error { return i.Err }

// Fallback supplies substitutes for reserved attributes that are missing or
// malformed in a mapping being decoded.
type Fallback struct {
	ID  func() string
	Now func() time.Time
}

func (fb Fallback) id() string {
	if fb.ID == nil {
		return ""
	}
	return fb.ID()
}

func (fb Fallback) now() time.Time {
	if fb.Now == nil {
		return time.Time{}
	}
	return fb.Now()
}

// Decode reconstructs an entity from its attribute mapping.
//
// The __class__ tag selects the kind; a missing or unknown tag is an error
// and no entity is returned. Everything else is best effort: reserved
// attributes that are absent or malformed are replaced from fb, declared
// fields of the wrong type keep their zero value, and each such repair is
// reported as an Issue. Attributes the kind does not declare are kept as
// extras and written back by Attributes.
//
// The returned entity is not registered with any store.
func Decode(obj attr.Object, fb Fallback) (Entity, []Issue, error) {
	tag, ok := obj[KeyClass]
	if !ok {
		return nil, nil, ErrMissingTag
	}
	kind, ok := tag.(attr.String)
	if !ok {
		return nil, nil, fmt.Errorf("%w: tag is %s", ErrMissingTag, attr.TypeName(tag))
	}
	factory, ok := Lookup(string(kind))
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownKind, string(kind))
	}

	e := factory()
	b := e.Meta()
	var issues []Issue

	declared := map[string]bool{
		KeyClass:     true,
		KeyID:        true,
		KeyCreatedAt: true,
		KeyUpdatedAt: true,
	}
	for _, f := range e.fields() {
		declared[f.name] = true
		v, ok := obj[f.name]
		if !ok {
			continue
		}
		if err := f.decode(v); err != nil {
			issues = append(issues, Issue{Attribute: f.name, Err: err})
		}
	}

	if id, ok := obj[KeyID].(attr.String); ok && id != "" {
		b.id = string(id)
	} else {
		b.id = fb.id()
		issues = append(issues, reservedIssue(obj, KeyID, fmt.Sprintf("using %q", b.id)))
	}

	created, err := timeAttr(obj, KeyCreatedAt)
	if err != nil {
		created = fb.now()
		issues = append(issues, Issue{Attribute: KeyCreatedAt, Err: err})
	}
	updated, err := timeAttr(obj, KeyUpdatedAt)
	if err != nil {
		updated = created
		issues = append(issues, Issue{Attribute: KeyUpdatedAt, Err: err})
	} else if updated.Before(created) {
		updated = created
		issues = append(issues, Issue{Attribute: KeyUpdatedAt, Err: errors.New("before created_at, using created_at")})
	}
	b.createdAt = created
	b.updatedAt = updated

	for k, v := range obj {
		if declared[k] {
			continue
		}
		if b.extra == nil {
			b.extra = make(attr.Object)
		}
		b.extra[k] = v
	}

	return e, issues, nil
}

func reservedIssue(obj attr.Object, key, action string) Issue {
	v, ok := obj[key]
	if !ok {
		return Issue{Attribute: key, Err: fmt.Errorf("%w, %s", ErrMissingAttribute, action)}
	}
	return Issue{Attribute: key, Err: fmt.Errorf("%w, %s", typeError("non-empty string", v), action)}
}

func timeAttr(obj attr.Object, key string) (time.Time, error) {
	v, ok := obj[key]
	if !ok {
		return time.Time{}, ErrMissingAttribute
	}
	s, ok := v.(attr.String)
	if !ok {
		return time.Time{}, typeError("timestamp string", v)
	}
	t, err := ParseTime(string(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp: %w", err)
	}
	return t, nil
}
