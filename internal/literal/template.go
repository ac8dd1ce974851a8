package literal

// declarations is static; it must not contain any character that
// escapeMetacharacters rewrites.
const declarations = `export type Badge = {
	badgeid: number;
	completion_time: number;
	level: number;
	scarcity: number;
	communityid: string | null;
	appid: number | null;
};

export type Achievement = {
	apiname: string;
	achieved: number;
	unlocktime: number;
	name: string;
	description: string;
	percent?: number;
	icon?: string;
	icongray?: string;
	hidden?: number;
};

export type Game = {
	appid: number;
	name: string;
	playtime: number;
	playtime_2weeks?: number;
	last_played: number;
	icon_url: string;
	num_achievements?: number;
	achievements?: Achievement[];
};

export type Friend = {
	steamid: string;
	avatar: string;
	lastlogoff?: number;
	username: string;
	friend_since: number;
};

export type Profile = {
	steamid: string;
	avatar: string;
	lastlogoff?: number;
	username: string;
	level: number;
	badges: Badge[];
	games: Game[];
	friends: Friend[];
};

`

const (
	constPrefix = "export const profile: Profile = "
	constSuffix = ";\n"
)
