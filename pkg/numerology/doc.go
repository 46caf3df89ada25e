// Package numerology implements the arithmetic behind a numerology reading:
// digit reduction with configurable master numbers, destiny and root numbers
// derived from a birthdate, the Chaldean name number, the 3x3 Vedic frequency
// grid and the Mahadasha/Antardasha period tables.
//
// Every function is pure. Inputs are validated once by ParseBirthdate; the
// remaining helpers accept a Birthdate value and cannot fail.
package numerology
