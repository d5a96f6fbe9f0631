package kernel

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Actor identifies who performed a mutating action on an order.
// Cancellation metadata records whether the customer or an administrator
// initiated the cancellation.
type Actor int

const (
	// ActorUnknown represents an invalid or undefined actor.
	ActorUnknown Actor = iota

	// ActorUser is the customer owning the order.
	ActorUser

	// ActorAdmin is an administrator.
	ActorAdmin
)

func getActorStrings() map[Actor]string {
	return map[Actor]string{
		ActorUnknown: "unknown",
		ActorUser:    "user",
		ActorAdmin:   "admin",
	}
}

// ActorFromString parses the persisted/API representation of an actor.
func ActorFromString(s string) (Actor, error) {
	for actor, str := range getActorStrings() {
		if str == s && actor != ActorUnknown {
			return actor, nil
		}
	}
	return ActorUnknown, errs.NewValueIsInvalidErrorWithCause("actor",
		fmt.Errorf("%q is not a valid actor", s))
}

// Validate checks that the Actor is user or admin.
func (a Actor) Validate() error {
	if a != ActorUser && a != ActorAdmin {
		return errs.NewValueIsInvalidErrorWithCause("actor",
			fmt.Errorf("%d is not a valid actor", a))
	}
	return nil
}

// String returns the lowercase name of the actor.
func (a Actor) String() string {
	if str, ok := getActorStrings()[a]; ok {
		return str
	}
	return "unknown"
}
