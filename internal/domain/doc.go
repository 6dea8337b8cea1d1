// Package domain models OFLC prevailing-wage survey data and the
// filter/merge transforms applied to it.
//
// # Data Source
//
// The Office of Foreign Labor Certification (OFLC) publishes one wage data
// release per fiscal year at https://flag.dol.gov/wage-data/wage-data-downloads.
// Each release unpacks into a directory named "OFLC_Wages_<year>" that holds,
// among others, two CSV tables used here:
//
//	ALC_Export.csv   one row per (Area, SocCode) pair with the four wage levels
//	Geography.csv    one row per Area with human-readable place names
//
// # Wage Table Columns
//
//	Area       numeric wage-survey area identifier (join key)
//	SocCode    Standard Occupational Classification code, e.g. "15-1252"
//	GeoLvl     geography level of the estimate (carried through untouched)
//	Level1-4   hourly prevailing wage for levels I through IV
//	Average    mean hourly wage
//	Label      free-text label for the estimate
//
// Wage cells are loosely formatted in some releases: "$40.50", "1,234.00",
// blank, or placeholder text. [CleanWageColumns] strips everything except
// digits, periods, and minus signs, then parses what is left. Anything that
// does not survive as a number is a missing value, never zero.
//
// # Geography Table Columns
//
//	Area             join key
//	AreaName         metropolitan or non-metropolitan area name
//	StateAb          two-letter state abbreviation
//	State            state name
//	CountyTownName   county or town within the area
//
// Older geography files are not UTF-8; the loader tries a list of encodings.
//
// # Wage Levels
//
// Level tokens L1 through L4 map to the Level1 through Level4 columns by a
// fixed lookup table (see [WageLevel.Column]).
//
// # Comparison Operators
//
// The configured operator reads from the offered wage's point of view:
// ">=" means "the offered wage is at or above the level", so the row test is
// level <= wage. The four operators and their row tests:
//
//	>=   level <= wage
//	>    level <  wage
//	<=   level >= wage
//	<    level >  wage
package domain
