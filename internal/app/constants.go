package app

// MinPlayersToStartGame is the smallest table a game can be scored for.
const MinPlayersToStartGame = 2

// ChipCurrency is the wallet key Points games settle in.
const ChipCurrency = "chips"

// GuestIDPrefix marks generated ids of seats that have no account.
const GuestIDPrefix = "guest-"
