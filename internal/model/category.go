package model

// Category is a spending category label. The set is closed: the labels below plus CategoryOther.
type Category string

const (
	CategoryEMI           Category = "EMI"
	CategoryRent          Category = "Rent"
	CategoryInsurance     Category = "Insurance"
	CategorySubscription  Category = "Subscription"
	CategoryFood          Category = "Food"
	CategoryGroceries     Category = "Groceries"
	CategoryOnlineShop    Category = "Online Shopping"
	CategoryOfflineShop   Category = "Offline Shopping"
	CategoryCab           Category = "Cab / Travel"
	CategoryPublicTransit Category = "Public Transport"
	CategoryStay          Category = "Stay / Hotels"
	CategoryUtilities     Category = "Utilities"
	CategoryInternet      Category = "Internet / Mobile"
	CategoryLoan          Category = "Loan / Finance"
	CategoryInvestments   Category = "Investments"
	CategoryTransfer      Category = "UPI / Bank Transfer"
	CategoryOther         Category = "Other"
)

// Categories returns every label in rule precedence order, CategoryOther last.
func Categories() []Category {
	return []Category{
		CategoryEMI,
		CategoryRent,
		CategoryInsurance,
		CategorySubscription,
		CategoryFood,
		CategoryGroceries,
		CategoryOnlineShop,
		CategoryOfflineShop,
		CategoryCab,
		CategoryPublicTransit,
		CategoryStay,
		CategoryUtilities,
		CategoryInternet,
		CategoryLoan,
		CategoryInvestments,
		CategoryTransfer,
		CategoryOther,
	}
}

// Valid reports whether c is one of the known labels.
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}
