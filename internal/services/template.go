package services

// ImportTemplateHeader is the fixed schema of the bulk-import companion
// artifact. It is a static constant, never derived from live data.
const ImportTemplateHeader = "make,model,year,category_id,variant,mileage_km,transmission,fuel,color,price_amount,status"

// ImportTemplateCSV returns the CSV template bytes and download filename.
func ImportTemplateCSV() ([]byte, string) {
	return []byte(ImportTemplateHeader + "\n"), "car-import-template.csv"
}
