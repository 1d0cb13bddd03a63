package main

var (
	firstNames = []string{"Alice", "Bob", "Carol", "Dana", "Erik", "Fatima", "Georg", "Hana", "Ivan", "Julia"}
	lastNames  = []string{"Smith", "Nguyen", "Garcia", "Kim", "Okafor", "Novak", "Silva", "Berg", "Rossi", "Tanaka"}
	countries  = []string{"US", "DE", "NL", "JP", "BR", "NG", "SE", "KR"}
)

// employee is one row of the generated demo data set.
type employee struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Age     int    `json:"age"`
	Country string `json:"country"`
}

// makeDataset deterministically generates n employees so paging is
// reproducible across requests.
func makeDataset(n int) []any {
	rows := make([]any, n)
	for i := 0; i < n; i++ {
		rows[i] = employee{
			ID:      i,
			Name:    firstNames[i%len(firstNames)] + " " + lastNames[(i/3)%len(lastNames)],
			Age:     20 + (i*7)%45,
			Country: countries[(i*5)%len(countries)],
		}
	}
	return rows
}

var employeeColumns = []string{"id", "name", "age", "country"}

func employeeValue(data any, columnID string) any {
	e, ok := data.(employee)
	if !ok {
		return nil
	}
	switch columnID {
	case "id":
		return e.ID
	case "name":
		return e.Name
	case "age":
		return e.Age
	case "country":
		return e.Country
	default:
		return nil
	}
}
