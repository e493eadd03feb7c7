package live

// indexHTML is the chat view: a phone-style transcript that renders agent
// messages as coloured bubbles and engine events as flat state cards, fed
// over the /ws stream with automatic reconnect.
const indexHTML = `<!doctype html><html><head><meta charset="utf-8"><meta name="viewport" content="width=device-width,initial-scale=1">
<title>Game Day Suits Live Draft</title>
<style>
 body{background:#121212;display:flex;justify-content:center;padding:20px;margin:0;font-family:ui-sans-serif,system-ui,-apple-system,Segoe UI,Roboto,Arial}
 .phone{background:#f5f5f5;border:1px solid #ccc;border-radius:24px;max-width:380px;width:100%;height:90vh;display:flex;flex-direction:column;overflow:hidden}
 .header{background:#f5f5f5;padding:10px;font-weight:bold;text-align:center;border-bottom:1px solid #ddd}
 .chat{flex:1;padding:10px;overflow-y:auto;background:#e0e0e0}
 .bubble{padding:8px 12px;border-radius:16px;margin-bottom:8px;max-width:85%;word-wrap:break-word;color:#fff}
 .bubble .name{font-weight:bold;margin-bottom:4px;font-size:0.8rem}
 .state{background:#f0f0f0;border:1px solid #ccc;border-radius:10px;margin-bottom:12px;padding:10px;font-size:0.75rem;color:#000}
</style>
</head><body>
<div class="phone">
  <div class="header">Game Day Suits Live Draft</div>
  <div id="chat" class="chat"></div>
</div>
<script>
 const chat = document.getElementById('chat');
 const colours = {};
 const palette = ["#0b93f6","#4CAF50","#FF9800","#9C27B0","#795548","#3F51B5","#009688","#607D8B","#F44336","#8BC34A"];
 function getColour(name){
   if(!colours[name]){ colours[name] = palette[Object.keys(colours).length % palette.length]; }
   return colours[name];
 }
 function bubble(name, text){
   const msg = document.createElement('div');
   msg.className = 'bubble';
   const col = getColour(name);
   msg.style.background = col;
   const num = parseInt(col.replace('#',''),16);
   const r = (num>>16)&255, g = (num>>8)&255, b = num&255;
   const luminance = 0.2126*r + 0.7152*g + 0.0722*b;
   msg.style.color = luminance > 140 ? '#000' : '#fff';
   const who = document.createElement('div');
   who.className = 'name';
   who.textContent = name;
   const body = document.createElement('div');
   body.textContent = text;
   msg.appendChild(who);
   msg.appendChild(body);
   chat.appendChild(msg);
 }
 function card(text){
   const div = document.createElement('div');
   div.className = 'state';
   div.textContent = text;
   chat.appendChild(div);
 }
 function render(ev){
   switch(ev.kind){
     case 'message': bubble(ev.speaker, ev.detail); break;
     case 'nomination': card('PLAYER: ' + ev.item + ' | ' + ev.team + ' opens at $' + ev.amount); break;
     case 'bid_accepted': card('HIGH BID: $' + ev.amount + ' by ' + ev.team); break;
     case 'bid_rejected': card('REJECTED: ' + ev.team + ' $' + ev.amount + ' (' + ev.detail + ')'); break;
     case 'pass': card(ev.team + ' passes'); break;
     case 'sale': card('SOLD: ' + ev.item + ' to ' + ev.team + ' for $' + ev.amount); break;
     case 'no_sale': card('NO SALE: ' + ev.item); break;
     default: return;
   }
   chat.scrollTop = chat.scrollHeight;
 }
 function connect(){
   const proto = location.protocol === 'https:' ? 'wss://' : 'ws://';
   const ws = new WebSocket(proto + location.host + '/ws');
   ws.onmessage = e => render(JSON.parse(e.data));
   ws.onclose = () => setTimeout(connect, 1500);
 }
 connect();
</script>
</body></html>`
