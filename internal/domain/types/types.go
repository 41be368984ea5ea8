package types

type ServiceMode string

// Dashboard serves the interactive dashboard and its JSON API.
// Report renders a Markdown report for a file, or for every file dropped into the import directory.
const (
	DashboardMode ServiceMode = "dashboard"
	ReportMode    ServiceMode = "report"
)

func (m ServiceMode) String() string {
	return string(m)
}

func (m ServiceMode) Valid() bool {
	return m == DashboardMode || m == ReportMode
}

// Ride record columns. Names are matched exactly.
const (
	ColBookingStatus      = "Booking_Status"
	ColVehicleType        = "Vehicle_Type"
	ColDate               = "Date"
	ColTime               = "Time"
	ColPaymentMethod      = "Payment_Method"
	ColBookingValue       = "Booking_Value"
	ColRideDistance       = "Ride_Distance"
	ColDriverRatings      = "Driver_Ratings"
	ColCustomerRating     = "Customer_Rating"
	ColCanceledByCustomer = "Canceled_Rides_by_Customer"
	ColCanceledByDriver   = "Canceled_Rides_by_Driver"
)

var (
	RequiredColumns = []string{
		ColBookingStatus,
		ColVehicleType,
		ColDate,
		ColPaymentMethod,
		ColBookingValue,
		ColRideDistance,
		ColDriverRatings,
		ColCustomerRating,
	}

	OptionalColumns = []string{
		ColTime,
		ColCanceledByCustomer,
		ColCanceledByDriver,
	}
)

// Labels of the synthetic "select everything" filter options.
const (
	AllStatuses = "Total Booking"
	AllVehicles = "All Vehicle"
	AllPayments = "All Payment Methods"
)

// Booking statuses counted as cancellations.
const (
	StatusCanceledByCustomer = "Canceled by Customer"
	StatusCanceledByDriver   = "Canceled by Driver"
	StatusDriverNotFound     = "Driver Not Found"
)

var CancelStatuses = []string{StatusCanceledByCustomer, StatusCanceledByDriver, StatusDriverNotFound}

// MissingValues are the cell values read as missing.
var MissingValues = []string{"", "NA", "N/A", "NaN", "nan", "null", "NULL", "None", "<NA>"}

// DateLayout is the canonical form of a normalized Date cell.
const DateLayout = "2006-01-02"

type NoticeLevel string

const (
	NoticeWarning NoticeLevel = "warning"
	NoticeInfo    NoticeLevel = "info"
)

type ChartKind string

const (
	ChartLine       ChartKind = "line"
	ChartBar        ChartKind = "bar"
	ChartPie        ChartKind = "pie"
	ChartGroupedBar ChartKind = "grouped-bar"
)

type RatingType string

const (
	RatingDriver   RatingType = "Driver"
	RatingCustomer RatingType = "Customer"
)

// Fixed rating scale.
const (
	RatingMin  = 0.0
	RatingMax  = 5.0
	RatingStep = 0.5
)

type FileFormat string

const (
	FormatCSV  FileFormat = "csv"
	FormatXLSX FileFormat = "xlsx"
)

// Dataset sources, used as metric labels.
const (
	SourceUpload = "upload"
	SourceReport = "report"
	SourceImport = "import"
)
