package badoption

//modelgen:model schema=public
type Account struct{}
