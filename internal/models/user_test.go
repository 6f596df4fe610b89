// ABOUTME: Tests for User model and follow-set helpers.

package models

import (
	"reflect"
	"testing"
)

func TestNewUser(t *testing.T) {
	u := NewUser("alice")

	if u.ID == "" {
		t.Error("expected ID to be generated")
	}
	if u.Followers == nil || u.Following == nil {
		t.Error("expected empty, non-nil follow sets")
	}
}

func TestAddIDIsIdempotent(t *testing.T) {
	set := AddID(nil, "a")
	set = AddID(set, "b")
	set = AddID(set, "a")

	if !reflect.DeepEqual(set, []string{"a", "b"}) {
		t.Errorf("unexpected set %v", set)
	}
}

func TestRemoveIDDoesNotAlias(t *testing.T) {
	orig := []string{"a", "b", "a"}

	got := RemoveID(orig, "a")

	if !reflect.DeepEqual(got, []string{"b"}) {
		t.Errorf("unexpected set %v", got)
	}
	if !reflect.DeepEqual(orig, []string{"a", "b", "a"}) {
		t.Errorf("input mutated: %v", orig)
	}
}

func TestHasFollower(t *testing.T) {
	u := NewUser("bob")
	u.Followers = []string{"x"}

	if !u.HasFollower("x") || u.HasFollower("y") {
		t.Error("membership check mismatch")
	}
}
