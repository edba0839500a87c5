package entities

// User is a registered account.
//
//modelgen:model table=users
type User struct{}

//modelgen:model conn=../db.properties
type Order struct{}

type (
	// Invoice is grouped with other declarations.
	//
	//modelgen:model
	Invoice struct{}

	// Status is not a struct and is skipped.
	//
	//modelgen:model
	Status int
)

// Plain carries no directive.
type Plain struct{}
