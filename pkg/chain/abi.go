package chain

const ReputationABI = `[
	{"type":"function","name":"submitRating","stateMutability":"nonpayable",
	 "inputs":[{"name":"creator","type":"address"},{"name":"supporter","type":"address"},{"name":"rating","type":"uint8"},{"name":"comment","type":"string"}],
	 "outputs":[]},
	{"type":"function","name":"getReputation","stateMutability":"view",
	 "inputs":[{"name":"creator","type":"address"}],
	 "outputs":[{"name":"score","type":"uint256"},{"name":"totalRatings","type":"uint256"},{"name":"completedRequests","type":"uint256"},{"name":"disputedRequests","type":"uint256"}]},
	{"type":"function","name":"getAverageRating","stateMutability":"view",
	 "inputs":[{"name":"creator","type":"address"}],
	 "outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"updateRequestStatus","stateMutability":"nonpayable",
	 "inputs":[{"name":"creator","type":"address"},{"name":"requestId","type":"string"},{"name":"completed","type":"bool"}],
	 "outputs":[]}
]`

const ERC20ABI = `[
	{"type":"function","name":"balanceOf","stateMutability":"view",
	 "inputs":[{"name":"owner","type":"address"}],
	 "outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"decimals","stateMutability":"view",
	 "inputs":[],
	 "outputs":[{"name":"","type":"uint8"}]},
	{"type":"function","name":"transfer","stateMutability":"nonpayable",
	 "inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],
	 "outputs":[{"name":"","type":"bool"}]}
]`
