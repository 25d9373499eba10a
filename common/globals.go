package common

// SyscVersion is the current version of the Sysc compiler.
const SyscVersion = "0.1.0"
