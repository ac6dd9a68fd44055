// Package testschema holds the schemas shared by the package tests.
package testschema

// Social is a relay style schema with global object identification, connections and mutations.
const Social = `
schema {
	query: Query
	mutation: Mutation
	subscription: Subscription
}

interface Node {
	id: ID!
}

interface Named {
	name: String
}

union Actor = User | Page

scalar DateTime

enum NameFormat {
	SHORT
	LONG
}

enum Order {
	ASC
	DESC
}

input Location {
	lat: Float!
	lng: Float!
}

type Query {
	node(id: ID!): Node
	nodes(ids: [ID!]!): [Node]
	viewer: Viewer
	me: User
	user(id: ID!): User
	usernames(names: [String!]!): [User]
	named(name: String): Named
	actor: Actor
	twoArgs(a: Int, b: Int): User
	checkins(near: Location, since: DateTime, order: Order): [Checkin]
}

type Viewer {
	actor: Actor
	node(id: ID!): Node
	users(first: Int, last: Int): UserConnection
}

type User implements Node & Named {
	id: ID!
	name(format: NameFormat): String
	friends(first: Int, last: Int, after: String, before: String, find: ID, orderBy: [Order]): UserConnection
	allFriends: [User]
	profilePicture(size: Int): Picture
}

type Page implements Node & Named {
	id: ID!
	name: String
}

type Robot implements Named {
	name: String
}

type Picture {
	uri: String
}

type Checkin {
	venue: String
	at: DateTime
}

type UserConnection {
	count: Int
	edges: [UserEdge]
	pageInfo: PageInfo!
	nodes: [User]
}

type UserEdge {
	cursor: String!
	node: User
}

type PageInfo {
	hasNextPage: Boolean!
	hasPreviousPage: Boolean!
}

input CreateUserInput {
	clientMutationId: String
	name: String!
}

input RenameUserInput {
	clientMutationId: String
	id: ID!
	name: String!
}

type CreateUserPayload {
	clientMutationId: String
	user: User
}

type Mutation {
	createUser(input: CreateUserInput!): CreateUserPayload
	renameUser(id: ID!, input: RenameUserInput!): CreateUserPayload
	deleteUser(data: CreateUserInput): CreateUserPayload
}

input UserCreatedInput {
	clientSubscriptionId: String
}

type UserCreatedPayload {
	clientSubscriptionId: String
	user: User
}

type Subscription {
	userCreated(input: UserCreatedInput): UserCreatedPayload
}
`

// SnakeCase uses snake_case names for the runtime fields.
const SnakeCase = `
schema {
	query: Query
}

interface Node {
	id: ID!
}

type Query {
	node(id: ID!): Node
	user(id: ID!): User
}

type User implements Node {
	id: ID!
	friends(first: Int): FriendConnection
}

type FriendConnection {
	edges: [FriendEdge]
	page_info: PageInfo
}

type FriendEdge {
	cursor: String
	node: User
}

type PageInfo {
	has_next_page: Boolean
	has_previous_page: Boolean
}
`
