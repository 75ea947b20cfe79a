package repositories

// Store groups the repositories of one backing database. It is built once at
// startup and handed to the services.
type Store struct {
	Users      UserRepository
	Profiles   ProfileRepository
	Farms      FarmRepository
	Expenses   ExpenseRepository
	Income     IncomeRepository
	Activities ActivityRepository
}
