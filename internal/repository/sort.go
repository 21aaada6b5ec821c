package repository

// fallbackOrder applies when a sort key is not in the entity's enumeration.
const fallbackOrder = "id DESC"

var clientSorts = map[string]string{
	"name":  "clients.name ASC, clients.id ASC",
	"city":  "clients.city ASC, clients.id ASC",
	"state": "clients.state ASC, clients.id ASC",
}

var buildingSorts = map[string]string{
	"name":  "buildings.name ASC, buildings.id ASC",
	"city":  "buildings.city ASC, buildings.id ASC",
	"state": "buildings.state ASC, buildings.id ASC",
}

var projectSorts = map[string]string{
	"name":     "projects.name ASC, projects.id ASC",
	"due_date": "CASE WHEN projects.due_date IS NULL THEN 1 ELSE 0 END, projects.due_date DESC, projects.id DESC",
	"status":   "projects.status ASC, projects.id ASC",
	"client":   "CASE WHEN clients.name IS NULL THEN 1 ELSE 0 END, clients.name ASC, projects.id ASC",
}

// orderFor resolves key against a fixed sort table. Keys never reach SQL directly.
func orderFor(sorts map[string]string, table, key string) string {
	if order, ok := sorts[key]; ok {
		return order
	}
	return table + "." + fallbackOrder
}
