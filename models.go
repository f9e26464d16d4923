package devportal

import (
	"fmt"
	"strings"
)

// MachineName is the device's assigned machine name, returned by
// GET /api/os/machinename.
type MachineName struct {
	Name string `json:"Name"`
}

// SoftwareInfo describes the operating system build running on the device,
// returned by GET /api/os/info.
type SoftwareInfo struct {
	ComputerName string `json:"ComputerName"`
	Language     string `json:"Language"`
	OsEdition    string `json:"OsEdition"`
	OsEditionID  int    `json:"OsEditionId"`
	OsVersion    string `json:"OsVersion"`
	Platform     string `json:"Platform"`
}

// IPAddress is a single address/mask pair as reported by the device.
type IPAddress struct {
	Address string `json:"IpAddress"`
	Mask    string `json:"Mask"`
}

// DHCPInfo describes an adapter's DHCP lease.
type DHCPInfo struct {
	LeaseExpires  int64     `json:"LeaseExpires"`
	LeaseObtained int64     `json:"LeaseObtained"`
	Address       IPAddress `json:"Address"`
}

// Adapter is a single network adapter entry from the IP configuration.
type Adapter struct {
	Description     string      `json:"Description"`
	HardwareAddress string      `json:"HardwareAddress"`
	Index           int         `json:"Index"`
	Name            string      `json:"Name"`
	Type            string      `json:"Type"`
	DHCP            DHCPInfo    `json:"DHCP"`
	Gateways        []IPAddress `json:"Gateways"`
	IPAddresses     []IPAddress `json:"IpAddresses"`
}

// IPConfig is the device's network configuration, returned by
// GET /api/networking/ipconfig.
type IPConfig struct {
	Adapters []Adapter `json:"Adapters"`
}

// PackageVersion is the four-part version of an installed package.
type PackageVersion struct {
	Build    int `json:"Build"`
	Major    int `json:"Major"`
	Minor    int `json:"Minor"`
	Revision int `json:"Revision"`
}

// RegisteredUser identifies a user a package is registered to.
type RegisteredUser struct {
	DisplayName string `json:"UserDisplayName"`
	SID         string `json:"UserSID"`
}

// AppXPackage is a single installed application package.
type AppXPackage struct {
	CanUninstall      bool             `json:"CanUninstall"`
	Name              string           `json:"Name"`
	PackageFamilyName string           `json:"PackageFamilyName"`
	PackageFullName   string           `json:"PackageFullName"`
	PackageOrigin     int              `json:"PackageOrigin"`
	PackageRelativeID string           `json:"PackageRelativeId"`
	Publisher         string           `json:"Publisher"`
	Version           PackageVersion   `json:"Version"`
	RegisteredUsers   []RegisteredUser `json:"RegisteredUsers"`
}

// AppXPackages is the device's installed package list, returned by
// GET /api/appx/packagemanager/packages.
type AppXPackages struct {
	InstalledPackages []AppXPackage `json:"InstalledPackages"`
}

// String returns the dotted four-part version string.
// Example: {Major:1, Minor:2, Build:3, Revision:4} → "1.2.3.4"
func (v PackageVersion) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", v.Major, v.Minor, v.Build, v.Revision)
}

// String returns a human-readable summary of the software info.
func (s SoftwareInfo) String() string {
	return fmt.Sprintf("%s (%s %s, %s)", s.ComputerName, s.OsEdition, s.OsVersion, s.Platform)
}

// FindByFamilyName returns the first installed package with the given package
// family name, or nil if no such package is installed.
func (p AppXPackages) FindByFamilyName(familyName string) *AppXPackage {
	for i := range p.InstalledPackages {
		if p.InstalledPackages[i].PackageFamilyName == familyName {
			return &p.InstalledPackages[i]
		}
	}
	return nil
}

// PrimaryAddresses returns the first IP address of each adapter that has one.
// Adapters without addresses are skipped.
func (c IPConfig) PrimaryAddresses() []string {
	addrs := make([]string, 0, len(c.Adapters))
	for _, adapter := range c.Adapters {
		if len(adapter.IPAddresses) > 0 && adapter.IPAddresses[0].Address != "" {
			addrs = append(addrs, adapter.IPAddresses[0].Address)
		}
	}
	return addrs
}

// String returns a human-readable summary of the IP configuration.
func (c IPConfig) String() string {
	if len(c.Adapters) == 0 {
		return "no adapters"
	}
	parts := make([]string, 0, len(c.Adapters))
	for _, adapter := range c.Adapters {
		addr := "no address"
		if len(adapter.IPAddresses) > 0 {
			addr = adapter.IPAddresses[0].Address
		}
		parts = append(parts, fmt.Sprintf("%s: %s", adapter.Description, addr))
	}
	return strings.Join(parts, ", ")
}
