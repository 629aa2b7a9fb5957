package schema

// UncategorizedID is the sentinel bucket for components that have no
// explicit category assignment. It is always present even though it is
// not part of the stored category list.
const UncategorizedID = "sin_categoria"

// CategoryDefinition describes one display grouping of components.
// Order in the stored list is display order.
type CategoryDefinition struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// CategoryAssignment pins one component to one category. A component
// with no assignment falls into the uncategorized bucket.
type CategoryAssignment struct {
	ComponentID string `json:"component_id"`
	CategoryID  string `json:"category_id"`
}

// CategoryConfig is the full category configuration. Definitions and
// assignments always travel together: load and save round-trip the pair
// as one document, never per-entry.
type CategoryConfig struct {
	Categories  []CategoryDefinition `json:"categories"`
	Assignments []CategoryAssignment `json:"assignments"`
}

// Categorize returns the assigned category id for a component, or
// UncategorizedID when none exists. Duplicate assignments for the same
// component are undefined behavior; the later entry wins.
func (c CategoryConfig) Categorize(componentID string) string {
	id := UncategorizedID
	for _, a := range c.Assignments {
		if a.ComponentID == componentID {
			id = a.CategoryID
		}
	}
	return id
}

// Uncategorized is the implicit bucket appended after the configured
// categories when partitioning the component tree.
func Uncategorized() CategoryDefinition {
	return CategoryDefinition{ID: UncategorizedID, Name: "Sin Categoría", Icon: "help-circle"}
}

// DefaultCategoryConfig is the fallback configuration: eight categories
// and a starter assignment table seeded from the component names common
// across the fleet. Positional variants (trailing letter) are listed
// explicitly per position.
func DefaultCategoryConfig() CategoryConfig {
	return CategoryConfig{
		Categories: []CategoryDefinition{
			{ID: "aceites_filtros", Name: "Aceites y Filtros", Icon: "droplet"},
			{ID: "transmision", Name: "Transmisión y Fluidos", Icon: "settings"},
			{ID: "frenos", Name: "Frenos", Icon: "disc"},
			{ID: "motor", Name: "Motor y Clutch", Icon: "cpu"},
			{ID: "suspension", Name: "Suspensión", Icon: "move-vertical"},
			{ID: "bandas", Name: "Bandas", Icon: "refresh-cw"},
			{ID: "electrico", Name: "Sistema Eléctrico", Icon: "zap"},
			{ID: "llantas", Name: "Llantas", Icon: "circle"},
		},
		Assignments: defaultAssignments(),
	}
}

func defaultAssignments() []CategoryAssignment {
	assign := []CategoryAssignment{
		{ComponentID: "aceite_motor", CategoryID: "aceites_filtros"},
		{ComponentID: "filtro_aceite", CategoryID: "aceites_filtros"},
		{ComponentID: "filtro_aire", CategoryID: "aceites_filtros"},
		{ComponentID: "filtro_combustible", CategoryID: "aceites_filtros"},
		{ComponentID: "aceite_transmision", CategoryID: "transmision"},
		{ComponentID: "aceite_diferencial", CategoryID: "transmision"},
		{ComponentID: "liquido_frenos", CategoryID: "transmision"},
		{ComponentID: "anticongelante", CategoryID: "transmision"},
		{ComponentID: "clutch", CategoryID: "motor"},
		{ComponentID: "afinacion_motor", CategoryID: "motor"},
		{ComponentID: "bujias", CategoryID: "motor"},
		{ComponentID: "banda_tiempo", CategoryID: "bandas"},
		{ComponentID: "banda_accesorios", CategoryID: "bandas"},
		{ComponentID: "bateria", CategoryID: "electrico"},
		{ComponentID: "alternador", CategoryID: "electrico"},
		{ComponentID: "marcha", CategoryID: "electrico"},
		{ComponentID: "marca_general_llantas", CategoryID: "llantas"},
	}
	// Four positions each for the lettered component families.
	for _, letter := range []string{"a", "b", "c", "d"} {
		assign = append(assign,
			CategoryAssignment{ComponentID: "suspencion_" + letter, CategoryID: "suspension"},
			CategoryAssignment{ComponentID: "balatas_" + letter, CategoryID: "frenos"},
			CategoryAssignment{ComponentID: "llantas_" + letter, CategoryID: "llantas"},
		)
	}
	return assign
}
