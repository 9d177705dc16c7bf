package constants

// VATCategoryCode is the closed set of Dutch VAT return box codes a line
// item may be filed under.
type VATCategoryCode string

const (
	// VATDomestic21 covers domestic sales taxed at 21%.
	VATDomestic21 VATCategoryCode = "1a"
	// VATEUZeroRated covers sales with 0% VAT to EU countries or exports.
	VATEUZeroRated VATCategoryCode = "1c"
	// VATEUReverseCharge covers services purchased from EU countries.
	VATEUReverseCharge VATCategoryCode = "4b"
)

var allVATCodes = []VATCategoryCode{VATDomestic21, VATEUZeroRated, VATEUReverseCharge}

func VATCodesAsStringSlice() []string {
	result := make([]string, len(allVATCodes))
	for i, code := range allVATCodes {
		result[i] = string(code)
	}
	return result
}
