package nakama

// RPC ids registered with Nakama.
const (
	RpcCreateGame          = "rummy_create_game"
	RpcGetGame             = "rummy_get_game"
	RpcAddRound            = "rummy_add_round"
	RpcUpdateRound         = "rummy_update_round"
	RpcListGames           = "rummy_list_games"
	RpcArrangeHand         = "rummy_arrange_hand"
	RpcValidateDeclaration = "rummy_validate_declaration"
	RpcShareGame           = "rummy_share_game"
	RpcViewSharedGame      = "rummy_view_shared_game"
	RpcSettleGame          = "rummy_settle_game"
	RpcGetChips            = "rummy_get_chips"
)

// Storage collections.
const (
	GamesCollection       = "rummy_games"
	SettlementsCollection = "rummy_settlements"
)

// Runtime environment keys.
const (
	EnvRulesConfigPath = "rummy_rules_config_path"
	EnvShareSecret     = "rummy_share_secret"
	EnvShareIssuer     = "rummy_share_issuer"

	defaultRulesConfigPath = "/nakama/data/modules/rules_config.json"
	defaultShareIssuer     = "rummy-scorer"
)

// NotificationCodeGameEvent tags in-app notifications carrying game events.
const NotificationCodeGameEvent = 110

// gRPC status codes used for runtime errors.
const (
	codeInvalidArgument    = 3
	codeNotFound           = 5
	codeFailedPrecondition = 9
	codeInternal           = 13
	codeUnauthenticated    = 16
)
