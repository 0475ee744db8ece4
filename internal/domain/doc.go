// Package domain models NWP model soundings decoded from Bufkit files.
//
// # Data Source
//
// Bufkit files are text profiles of NWP model output (GFS, NAM, RAP, ...)
// published per station and model cycle, originally for the NWS BUFKIT
// display tool. Each file interleaves two kinds of data for one station:
//
//   - an upper-air section: one block per forecast hour holding the station
//     header, a set of stability indices, and the vertical profile
//     (pressure, temperature, moisture, wind, ...) at every model level;
//   - a surface section: a column header followed by one row of
//     near-ground fields per forecast hour.
//
// # Bufkit Conventions
//
// Valid times:
//
//	YYMMDD/HHMM in UTC, e.g. "170401/0300" = 2017-04-01 03:00Z.
//	The two-digit year maps into 2000-2099.
//
// Missing values:
//
//	-9999 (or -9999.00) is the sentinel for missing data. Parsed values
//	carry it as nil, never as a number, so it cannot be mistaken for a
//	measurement downstream.
//
// Wind:
//
//	Profile wind is direction (degrees) plus speed (knots). A level keeps
//	its wind only when both components are present; a lone direction or
//	speed is meaningless and is dropped.
//
// A [Sounding] is one forecast hour: the upper-air block merged with the
// surface row of the same valid time. Index names in Sounding.Indexes are
// spelled out ("Showalter", "CAPE", "BulkRichardsonNumber") rather than
// using the raw file mnemonics; the catalog package maps between the two.
//
// # ID Generation
//
// Sounding IDs are deterministic SHA-256 hashes of station|valid time|lead
// time. Reprocessing the same file yields the same IDs, which makes
// downstream upserts idempotent and replays safe. See [Finalize].
package domain
