package entities

// Medication represents one row of the medications dataset.
// JSON field names follow the dataset column names so API consumers can
// match records against the original CSV headers.
type Medication struct {
	ID           string   `json:"id"`
	SN           string   `json:"SN"`
	TradeName    string   `json:"Trade_Name"`
	Strength     string   `json:"Strength"`
	DosageForm   string   `json:"Dosage_Form"`
	Quantity     string   `json:"Quantity_of_Dosage_Form"`
	Price        string   `json:"Price"`
	PriceNumeric *float64 `json:"Price_Numeric,omitempty"`
	GenericName  string   `json:"Generic_Name"`
	LocalImport  string   `json:"Local_Import"`
	Category     string   `json:"Category"`
	Indications  string   `json:"Indications_for_Use"`
	SideEffects  []string `json:"Side_Effects"`
	ImageURL     string   `json:"Image_URL,omitempty"`
}

// Statistics summarizes the loaded dataset.
type Statistics struct {
	TotalMedications int             `json:"total_medications"`
	TotalCategories  int             `json:"total_categories"`
	PriceStatistics  PriceStatistics `json:"price_statistics"`
	CategoriesDist   map[string]int  `json:"categories_distribution"`
	DosageFormsDist  map[string]int  `json:"dosage_forms_distribution"`
	LocalImportDist  map[string]int  `json:"local_import_distribution"`
}

// PriceStatistics holds the numeric price summary. Records whose price could
// not be parsed are excluded from every field.
type PriceStatistics struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Count  int     `json:"count"`
}

// SearchCriteria is the advanced search request body. Every field is
// optional; set fields are combined with AND semantics.
type SearchCriteria struct {
	TradeName   string   `json:"trade_name,omitempty"`
	GenericName string   `json:"generic_name,omitempty"`
	Category    string   `json:"category,omitempty"`
	MinPrice    *float64 `json:"min_price,omitempty"`
	MaxPrice    *float64 `json:"max_price,omitempty"`
	Indication  string   `json:"indication,omitempty"`
}
