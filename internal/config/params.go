package config

// State is the desired state of a resource.
type State string

// Desired states across the four resource classes. Not every class accepts
// every state; each params type validates its own subset.
const (
	StatePresent  State = "present"
	StateActive   State = "active"
	StateAbsent   State = "absent"
	StateRunning  State = "running"
	StateStopped  State = "stopped"
	StateRebooted State = "rebooted"
	StateUpdate   State = "update"
)

// Default values shared with the original module interface.
const (
	DefaultCount       = 1
	DefaultCountOffset = 1
	DefaultWaitTimeout = 1800 // seconds
)

// ServerParams describes a desired server state.
type ServerParams struct {
	State        State    `yaml:"state" validate:"omitempty,oneof=present active absent running stopped rebooted"`
	AuthToken    string   `yaml:"auth_token"`
	ProjectID    int      `yaml:"project_id" validate:"required"`
	Hostnames    []string `yaml:"hostname"`
	ServerID     int      `yaml:"server_id"`
	ServerIDs    []int    `yaml:"server_ids"`
	Image        string   `yaml:"image"`
	Region       string   `yaml:"region"`
	PlanID       int      `yaml:"plan_id"`
	Count        int      `yaml:"count"`
	CountOffset  int      `yaml:"count_offset"`
	SSHKeyIDs    []int    `yaml:"ssh_key_id"`
	SSHLabels    []string `yaml:"ssh_label"`
	IPAddresses  []string `yaml:"ip_address"`
	IPAddressIDs []string `yaml:"ip_address_id"`
	SpotMarket   bool     `yaml:"spot_market"`
	StorageID    int      `yaml:"storage_id"`
	WaitTimeout  int      `yaml:"wait_timeout"`
}

// Token returns the inline auth token, if any.
func (p *ServerParams) Token() string { return p.AuthToken }

// SetDefaults fills unset fields with their documented defaults.
func (p *ServerParams) SetDefaults() {
	if p.State == "" {
		p.State = StatePresent
	}
	if p.Count < 1 {
		p.Count = DefaultCount
	}
	if p.CountOffset < 1 {
		p.CountOffset = DefaultCountOffset
	}
	if p.WaitTimeout <= 0 {
		p.WaitTimeout = DefaultWaitTimeout
	}
}

// Validate checks field values and parameter combinations.
func (p *ServerParams) Validate() error {
	if err := validateStruct(p); err != nil {
		return err
	}
	if err := mutuallyExclusive(
		field{"hostname", len(p.Hostnames) > 0},
		field{"server_ids", len(p.ServerIDs) > 0},
	); err != nil {
		return err
	}
	if err := mutuallyExclusive(
		field{"ssh_key_id", len(p.SSHKeyIDs) > 0},
		field{"ssh_label", len(p.SSHLabels) > 0},
	); err != nil {
		return err
	}
	if err := mutuallyExclusive(
		field{"ip_address", len(p.IPAddresses) > 0},
		field{"ip_address_id", len(p.IPAddressIDs) > 0},
	); err != nil {
		return err
	}
	if err := requireOneOf(
		field{"hostname", len(p.Hostnames) > 0},
		field{"server_ids", len(p.ServerIDs) > 0},
		field{"server_id", p.ServerID != 0},
	); err != nil {
		return err
	}

	if p.State == StatePresent || p.State == StateActive {
		if err := requireAll(
			field{"hostname", len(p.Hostnames) > 0},
			field{"image", p.Image != ""},
			field{"plan_id", p.PlanID != 0},
		); err != nil {
			return err
		}
	}
	return nil
}

// IPParams describes a desired floating IP state.
type IPParams struct {
	State            State    `yaml:"state" validate:"omitempty,oneof=present absent update"`
	AuthToken        string   `yaml:"auth_token"`
	ProjectID        int      `yaml:"project_id" validate:"required"`
	Type             string   `yaml:"type"`
	Region           string   `yaml:"region"`
	PtrRecord        string   `yaml:"ptr_record"`
	ARecord          string   `yaml:"a_record"`
	AssignedTo       string   `yaml:"assigned_to"`
	RoutedTo         string   `yaml:"routed_to"`
	RoutedToHostname string   `yaml:"routed_to_hostname"`
	RoutedToServerID int      `yaml:"routed_to_server_id"`
	IPAddresses      []string `yaml:"ip_address"`
	IPAddressIDs     []string `yaml:"ip_address_id"`
	Count            int      `yaml:"count"`
}

// Token returns the inline auth token, if any.
func (p *IPParams) Token() string { return p.AuthToken }

// SetDefaults fills unset fields with their documented defaults.
func (p *IPParams) SetDefaults() {
	if p.State == "" {
		p.State = StatePresent
	}
	if p.Count < 1 {
		p.Count = DefaultCount
	}
}

// HasRouteTarget reports whether any routing target parameter is set.
func (p *IPParams) HasRouteTarget() bool {
	return p.RoutedTo != "" || p.RoutedToHostname != "" || p.RoutedToServerID != 0
}

// Validate checks field values and parameter combinations.
func (p *IPParams) Validate() error {
	if err := validateStruct(p); err != nil {
		return err
	}
	if err := mutuallyExclusive(
		field{"routed_to", p.RoutedTo != ""},
		field{"routed_to_hostname", p.RoutedToHostname != ""},
		field{"routed_to_server_id", p.RoutedToServerID != 0},
	); err != nil {
		return err
	}
	if err := mutuallyExclusive(
		field{"ip_address", len(p.IPAddresses) > 0},
		field{"ip_address_id", len(p.IPAddressIDs) > 0},
	); err != nil {
		return err
	}

	if p.State == StateAbsent || p.State == StateUpdate {
		if err := requireOneOf(
			field{"ip_address", len(p.IPAddresses) > 0},
			field{"ip_address_id", len(p.IPAddressIDs) > 0},
		); err != nil {
			return err
		}
	}
	return nil
}

// SSHKeyParams describes a desired SSH key state.
type SSHKeyParams struct {
	State        State    `yaml:"state" validate:"omitempty,oneof=present absent"`
	AuthToken    string   `yaml:"auth_token"`
	KeyIDs       []int    `yaml:"key_id"`
	Labels       []string `yaml:"label"`
	Fingerprints []string `yaml:"fingerprint"`
	Keys         []string `yaml:"key"`
	KeyFiles     []string `yaml:"key_file"`
}

// Token returns the inline auth token, if any.
func (p *SSHKeyParams) Token() string { return p.AuthToken }

// SetDefaults fills unset fields with their documented defaults.
func (p *SSHKeyParams) SetDefaults() {
	if p.State == "" {
		p.State = StatePresent
	}
}

// Validate checks field values and parameter combinations.
func (p *SSHKeyParams) Validate() error {
	if err := validateStruct(p); err != nil {
		return err
	}

	exclusions := [][2]field{
		{{"key_id", len(p.KeyIDs) > 0}, {"label", len(p.Labels) > 0}},
		{{"key_id", len(p.KeyIDs) > 0}, {"fingerprint", len(p.Fingerprints) > 0}},
		{{"label", len(p.Labels) > 0}, {"fingerprint", len(p.Fingerprints) > 0}},
		{{"key", len(p.Keys) > 0}, {"fingerprint", len(p.Fingerprints) > 0}},
		{{"key", len(p.Keys) > 0}, {"key_id", len(p.KeyIDs) > 0}},
		{{"key", len(p.Keys) > 0}, {"key_file", len(p.KeyFiles) > 0}},
	}
	for _, pair := range exclusions {
		if err := mutuallyExclusive(pair[0], pair[1]); err != nil {
			return err
		}
	}

	switch p.State {
	case StatePresent:
		if len(p.Labels) != 1 {
			return configError(`adding a key requires exactly one "label"`)
		}
		if len(p.Keys)+len(p.KeyFiles) != 1 {
			return configError(`adding a key requires exactly one "key" or "key_file"`)
		}
	case StateAbsent:
		if err := requireOneOf(
			field{"label", len(p.Labels) > 0},
			field{"key", len(p.Keys) > 0},
			field{"fingerprint", len(p.Fingerprints) > 0},
			field{"key_id", len(p.KeyIDs) > 0},
			field{"key_file", len(p.KeyFiles) > 0},
		); err != nil {
			return err
		}
	}
	return nil
}

// StorageParams describes a desired storage volume state.
type StorageParams struct {
	State            State  `yaml:"state" validate:"omitempty,oneof=present absent update"`
	AuthToken        string `yaml:"auth_token"`
	ProjectID        int    `yaml:"project_id" validate:"required"`
	VolumeID         int    `yaml:"storage_volume_id"`
	Size             int    `yaml:"size"`
	Description      string `yaml:"description"`
	Region           string `yaml:"region"`
	AttachToServerID int    `yaml:"attach_to_server_id"`
	AttachToHostname string `yaml:"attach_to_server_hostname"`
}

// Token returns the inline auth token, if any.
func (p *StorageParams) Token() string { return p.AuthToken }

// SetDefaults fills unset fields with their documented defaults.
func (p *StorageParams) SetDefaults() {
	if p.State == "" {
		p.State = StatePresent
	}
}

// HasAttachTarget reports whether any attachment target parameter is set.
func (p *StorageParams) HasAttachTarget() bool {
	return p.AttachToServerID != 0 || p.AttachToHostname != ""
}

// Validate checks field values and parameter combinations.
func (p *StorageParams) Validate() error {
	if err := validateStruct(p); err != nil {
		return err
	}
	if err := mutuallyExclusive(
		field{"attach_to_server_id", p.AttachToServerID != 0},
		field{"attach_to_server_hostname", p.AttachToHostname != ""},
	); err != nil {
		return err
	}
	if p.State == StateUpdate {
		if err := mutuallyExclusive(
			field{"size", p.Size != 0},
			field{"attach_to_server_id", p.AttachToServerID != 0},
		); err != nil {
			return err
		}
		if err := mutuallyExclusive(
			field{"size", p.Size != 0},
			field{"attach_to_server_hostname", p.AttachToHostname != ""},
		); err != nil {
			return err
		}
	}

	switch p.State {
	case StatePresent:
		if p.Size == 0 {
			return requiredError("size")
		}
	case StateAbsent, StateUpdate:
		if p.VolumeID == 0 {
			return requiredError("storage_volume_id")
		}
	}
	return nil
}
