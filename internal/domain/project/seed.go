package project

var seedProjects = []Project{
	{
		ID:          "p1",
		Name:        "Website Redesign",
		ClientName:  "Northwind Traders",
		Status:      StatusActive,
		StartDate:   "2024-01-15",
		EndDate:     "2024-06-30",
		Description: "Refresh of the public marketing site and CMS migration.",
	},
	{
		ID:          "p2",
		Name:        "Mobile Banking App",
		ClientName:  "Contoso Bank",
		Status:      StatusOnHold,
		StartDate:   "2024-02-01",
		Description: "Waiting on the client's security review before the next sprint.",
	},
	{
		ID:         "p3",
		Name:       "Inventory Sync",
		ClientName: "Fabrikam Supplies",
		Status:     StatusCompleted,
		StartDate:  "2023-09-04",
		EndDate:    "2023-12-20",
	},
	{
		ID:          "p4",
		Name:        "Data Warehouse Migration",
		ClientName:  "Adventure Works",
		Status:      StatusActive,
		StartDate:   "2024-03-11",
		Description: "Move nightly reporting jobs to the new warehouse.",
	},
	{
		ID:         "p5",
		Name:       "Customer Support Portal",
		ClientName: "Tailspin Toys",
		Status:     StatusActive,
		StartDate:  "2024-04-02",
		EndDate:    "2024-09-27",
	},
	{
		ID:          "p6",
		Name:        "Brand Guidelines",
		ClientName:  "Wide World Importers",
		Status:      StatusCompleted,
		StartDate:   "2023-05-08",
		EndDate:     "2023-07-14",
		Description: "Logo, typography and tone-of-voice handbook.",
	},
}

// Seed returns a fresh copy of the built-in dataset written to an empty store.
func Seed() []Project {
	return Clone(seedProjects)
}
