package cherry

// Server states reported by the Cherry Servers API.
const (
	ServerStateActive      = "active"
	ServerStatePending     = "pending"
	ServerStateTerminating = "terminating"
)

// IP address types. Floating IPs are the detachable addresses managed by
// this tool; primary IPs belong to a server and are routing targets.
const (
	IPTypeFloating = "floating-ip"
	IPTypePrimary  = "primary-ip"
)

// Region identifies a Cherry Servers region, e.g. "EU-East-1".
type Region struct {
	ID   int    `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// Server is a bare-metal server record.
type Server struct {
	ID           int         `json:"id"`
	Href         string      `json:"href,omitempty"`
	Hostname     string      `json:"hostname,omitempty"`
	Name         string      `json:"name,omitempty"`
	Image        string      `json:"image,omitempty"`
	State        string      `json:"state,omitempty"`
	SpotInstance bool        `json:"spot_instance,omitempty"`
	Region       *Region     `json:"region,omitempty"`
	IPAddresses  []IPAddress `json:"ip_addresses,omitempty"`
}

// IPAddress is a floating or primary IP record. Floating IP ids are UUIDs.
type IPAddress struct {
	ID            string     `json:"id"`
	Href          string     `json:"href,omitempty"`
	Address       string     `json:"address,omitempty"`
	AddressFamily int        `json:"address_family,omitempty"`
	Cidr          string     `json:"cidr,omitempty"`
	Type          string     `json:"type,omitempty"`
	PtrRecord     string     `json:"ptr_record,omitempty"`
	ARecord       string     `json:"a_record,omitempty"`
	RoutedTo      *IPAddress `json:"routed_to,omitempty"`
}

// SSHKey is a public key stored in the client portal.
type SSHKey struct {
	ID          int    `json:"id"`
	Href        string `json:"href,omitempty"`
	Label       string `json:"label,omitempty"`
	Key         string `json:"key,omitempty"`
	Fingerprint string `json:"fingerprint,omitempty"`
}

// Attachment describes the server a volume is attached to.
type Attachment struct {
	ID   int    `json:"id"`
	Href string `json:"href,omitempty"`
}

// Volume is an elastic block storage record.
type Volume struct {
	ID          int         `json:"id"`
	Href        string      `json:"href,omitempty"`
	Size        int         `json:"size,omitempty"`
	Description string      `json:"description,omitempty"`
	Region      *Region     `json:"region,omitempty"`
	AttachedTo  *Attachment `json:"attached_to,omitempty"`
}
