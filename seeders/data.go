package seeders

// Dictionary rows are inserted in this exact order so the ids the
// status sync relies on stay stable across environments.
var equipmentTypes = []string{
	"Computer",
	"Printer",
	"Network device",
	"Peripheral",
	"Other",
}

var equipmentStatuses = []string{
	"Working",
	"Under repair",
	"Obsolete",
}

var interventionOutcomes = []string{
	"Resolved",
	"Monitoring",
	"Pending",
}

type demoLocation struct {
	Name       string
	Building   string
	Floor      string
	Department string
}

var demoLocations = []demoLocation{
	{Name: "Head office 2F", Building: "Head office", Floor: "2", Department: "Accounting"},
	{Name: "Head office 3F", Building: "Head office", Floor: "3", Department: "Engineering"},
	{Name: "Warehouse", Building: "Warehouse", Floor: "1", Department: "Logistics"},
}

type demoUser struct {
	Username  string
	Password  string
	Role      string
	FirstName string
	LastName  string
	Email     string
}

var demoUsers = []demoUser{
	{Username: "admin", Password: "admin123", Role: "admin", FirstName: "Ada", LastName: "Moreira", Email: "admin@trackhub.local"},
	{Username: "tech1", Password: "tech123", Role: "technician", FirstName: "Bruno", LastName: "Alves", Email: "bruno@trackhub.local"},
	{Username: "tech2", Password: "tech123", Role: "technician", FirstName: "Carla", LastName: "Nunes", Email: "carla@trackhub.local"},
}

type demoEquipment struct {
	Name       string
	TypeID     uint64
	StatusID   uint64
	LocationID uint64
}

var demoEquipments = []demoEquipment{
	{Name: "Dell OptiPlex 7090", TypeID: 1, StatusID: 1, LocationID: 1},
	{Name: "HP LaserJet M404", TypeID: 2, StatusID: 2, LocationID: 1},
	{Name: "Cisco Catalyst 2960", TypeID: 3, StatusID: 1, LocationID: 2},
	{Name: "Epson projector EB-X51", TypeID: 4, StatusID: 3, LocationID: 3},
}
