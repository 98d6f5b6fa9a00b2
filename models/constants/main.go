package constants

/*
	Defines a set of base level
	constants and enums to be used
	throughout the console and it's
	associated services.
*/
type Classification string

type JobState string
