package ledger

// ProgramCodes is the allow-list of construction program codes whose budget
// entries are projected as costs.
var ProgramCodes = []string{
	"0905", "0910", "0915", "0916", "0917",
	"0920", "0925", "0930", "0935", "0940", "0945",
}

// DefaultPrograms returns a copy of ProgramCodes.
func DefaultPrograms() []string {
	return append([]string(nil), ProgramCodes...)
}

// DefaultStaticRows returns the seed ledger used to bootstrap a new store.
// The two 0920/JPALEASE/2025 rows are intentionally distinct entries.
func DefaultStaticRows() []StaticRow {
	return []StaticRow{
		{Resource: "0916", FlowType: FlowTypeProceeds, FiscalYear: "2025", FlowSource: FlowSourceProjected, Amount: 80000000.00},
		{Resource: "0905", FlowType: FlowTypeJPALease, FiscalYear: "2025", FlowSource: FlowSourceProjected, Amount: 56000000.00},
		{Resource: "0920", FlowType: FlowTypeJPALease, FiscalYear: "2025", FlowSource: FlowSourceProjected, Amount: 500000.00},
		{Resource: "0920", FlowType: FlowTypeJPALease, FiscalYear: "2026", FlowSource: FlowSourceProjected, Amount: 500000.00},
		{Resource: "0920", FlowType: FlowTypeJPALease, FiscalYear: "2027", FlowSource: FlowSourceProjected, Amount: 500000.00},
		{Resource: "0920", FlowType: FlowTypeJPALease, FiscalYear: "2025", FlowSource: FlowSourceProjected, Amount: -30000000.00},
		{Resource: "0930", FlowType: FlowTypeDevFees, FiscalYear: "2025", FlowSource: FlowSourceProjected, Amount: 4000000.00},
		{Resource: "0930", FlowType: FlowTypeDevFees, FiscalYear: "2026", FlowSource: FlowSourceProjected, Amount: 4000000.00},
		{Resource: "0930", FlowType: FlowTypeDevFees, FiscalYear: "2027", FlowSource: FlowSourceProjected, Amount: 4000000.00},
		{Resource: "0930", FlowType: FlowTypeDevFees, FiscalYear: "2028", FlowSource: FlowSourceProjected, Amount: 4000000.00},
		{Resource: "0930", FlowType: FlowTypeDevFees, FiscalYear: "2029", FlowSource: FlowSourceProjected, Amount: 4000000.00},
		{Resource: "0930", FlowType: FlowTypeDevFees, FiscalYear: "2030", FlowSource: FlowSourceProjected, Amount: 4000000.00},
		{Resource: "0935", FlowType: FlowTypeStabilize, FiscalYear: "2025", FlowSource: FlowSourceProjected, Amount: 0},
		{Resource: "0935", FlowType: FlowTypeStabilize, FiscalYear: "2026", FlowSource: FlowSourceProjected, Amount: 0},
		{Resource: "0935", FlowType: FlowTypeStabilize, FiscalYear: "2027", FlowSource: FlowSourceProjected, Amount: -20000000.00},
	}
}

// DefaultSettings returns the settings a new store is seeded with.
func DefaultSettings() []Setting {
	return []Setting{
		{Name: SettingPriorYear, Value: DefaultPriorYear},
		{Name: SettingInterestRate, Value: DefaultInterestRate},
	}
}
