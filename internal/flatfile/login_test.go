package flatfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const loginExport = "B;FR;CUS1;;ADR1;ADR2;ADR1;ADR2;EUR;;CNT1;STD;30D;ROAD;12.5;0.5;1000;3|" +
	"A;ADR1;Paris;1 rue de la Paix;;75002;FR;0140000000;;CNT1|" +
	"A;ADR2;Lyon;5 quai du Rhone;;69002;FR;0470000000;;CNT1|" +
	"D;ADR2;Acme Lyon;;7|" +
	"C;CNT1;MR;Jean;Dupont;0600000000;BUYER|"

func TestDecodeLoginProfile(t *testing.T) {
	d := NewDecoder(nil)

	profile, anomalies := d.DecodeLoginProfile(loginExport)

	assert.Equal(t, 0, anomalies.Total())

	require.NotNil(t, profile.Header)
	h := profile.Header
	assert.Equal(t, "FR", h.Country)
	assert.Equal(t, "CUS1", h.CustomerCode)
	assert.Equal(t, "ADR1", h.InvoiceAddress)
	assert.Equal(t, "ADR2", h.DeliveryAddress)
	assert.Equal(t, "ADR1", h.OrderAddress)
	assert.Equal(t, "ADR2", h.TransportAddress)
	assert.Equal(t, "EUR", h.Currency)
	assert.Equal(t, "CNT1", h.ContactCode)
	assert.Equal(t, "STD", h.DeliveryMode)
	assert.Equal(t, "30D", h.PaymentTerm)
	assert.Equal(t, "ROAD", h.TransportType)
	assert.Equal(t, 12.5, h.FixedCharges)
	assert.Equal(t, 0.5, h.VariableCharges)
	assert.Equal(t, 1000.0, h.NetAmount)
	assert.Equal(t, 3, h.NumberOfPackages)

	require.Len(t, profile.Addresses, 2)
	assert.Equal(t, "ADR1", profile.Addresses[0].Code)
	assert.Equal(t, "Paris", profile.Addresses[0].City)
	assert.Equal(t, "1 rue de la Paix", profile.Addresses[0].AddressLine)
	assert.Equal(t, "75002", profile.Addresses[0].PostalCode)
	assert.Equal(t, "FR", profile.Addresses[0].Country)
	assert.Equal(t, "0140000000", profile.Addresses[0].Phone)
	assert.Equal(t, "CNT1", profile.Addresses[0].ContactCode)

	require.Len(t, profile.Recipients, 1)
	assert.Equal(t, "ADR2", profile.Recipients[0].AddressCode)
	assert.Equal(t, "Acme Lyon", profile.Recipients[0].CompanyName)
	assert.Equal(t, 7.0, profile.Recipients[0].Quantity)

	require.NotNil(t, profile.Contact)
	assert.Equal(t, "CNT1", profile.Contact.Code)
	assert.Equal(t, "MR", profile.Contact.CivilityCode)
	assert.Equal(t, "Jean", profile.Contact.FirstName)
	assert.Equal(t, "Dupont", profile.Contact.LastName)
	assert.Equal(t, "0600000000", profile.Contact.Phone)
	assert.Equal(t, "BUYER", profile.Contact.RoleCode)
}

// Repetition of the singleton records overwrites instead of accumulating.
func TestRepeatedHeaderAndContactLastWins(t *testing.T) {
	d := NewDecoder(nil)

	profile, _ := d.DecodeLoginProfile(
		"B;FR;FIRST|B;DE;SECOND|C;C1;MR;A;B;1;X|C;C2;MS;C;D;2;Y|")

	require.NotNil(t, profile.Header)
	assert.Equal(t, "DE", profile.Header.Country)
	assert.Equal(t, "SECOND", profile.Header.CustomerCode)

	require.NotNil(t, profile.Contact)
	assert.Equal(t, "C2", profile.Contact.Code)
}

// Short records and malformed numerics never fail the decode.
func TestLoginDecodeIsDefensive(t *testing.T) {
	d := NewDecoder(nil)

	profile, _ := d.DecodeLoginProfile("B;FR|A;ADR1|D;ADR1;Name;;lots|")

	require.NotNil(t, profile.Header)
	assert.Equal(t, "", profile.Header.CustomerCode)
	assert.Equal(t, 0.0, profile.Header.FixedCharges)
	assert.Equal(t, 0, profile.Header.NumberOfPackages)

	require.Len(t, profile.Recipients, 1)
	assert.Equal(t, 0.0, profile.Recipients[0].Quantity)
}

func TestEmptyLoginExport(t *testing.T) {
	d := NewDecoder(nil)

	profile, anomalies := d.DecodeLoginProfile("")

	assert.Nil(t, profile.Header)
	assert.Nil(t, profile.Contact)
	assert.Empty(t, profile.Addresses)
	assert.Empty(t, profile.Recipients)
	assert.Equal(t, 0, anomalies.Total())
}
